package summary

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// RenderMarkdown converts markdown to sanitized HTML.
// Scripts, event handlers and unsafe URL schemes are stripped so a summary
// built from untrusted text cannot inject active content into the job page.
func RenderMarkdown(markdown string) string {
	unsafeHTML := blackfriday.Run(
		[]byte(markdown),
		blackfriday.WithExtensions(
			blackfriday.CommonExtensions|
				blackfriday.AutoHeadingIDs|
				blackfriday.Footnotes,
		),
	)

	return string(sanitizer().SanitizeBytes(unsafeHTML))
}

// Sanitize strips unsafe markup from raw HTML.
func Sanitize(html string) string {
	return sanitizer().Sanitize(html)
}

func sanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("lang").OnElements("pre")
	policy.AllowAttrs("cite").OnElements("blockquote")
	policy.AllowElements("details", "summary")
	return policy
}
