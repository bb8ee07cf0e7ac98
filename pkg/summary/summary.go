// Package summary builds the Markdown/HTML job summary shown on the run page
// and writes it to the step summary file.
package summary

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"actioncore/pkg/filecmd"
)

// DocsURL documents the step summary file.
const DocsURL = "https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions#adding-a-job-summary"

// EOL terminates every element added by the builder.
const EOL = "\n"

// TableCell is one cell of AddTable. Colspan and Rowspan of 0 or 1 are left
// out of the markup.
type TableCell struct {
	Data    string
	Header  bool
	Colspan int
	Rowspan int
}

// Cell returns a data cell.
func Cell(data string) TableCell {
	return TableCell{Data: data}
}

// HeaderCell returns a header cell.
func HeaderCell(data string) TableCell {
	return TableCell{Data: data, Header: true}
}

// ImageOptions sets the rendered size of an image in pixels. Zero means unset.
type ImageOptions struct {
	Width  int
	Height int
}

// Summary buffers summary content until Write.
type Summary struct {
	files  *filecmd.Writer
	buffer strings.Builder
}

// New creates an empty Summary writing through files.
func New(files *filecmd.Writer) *Summary {
	return &Summary{files: files}
}

// Path returns the step summary file path.
func (s *Summary) Path() (string, error) {
	path, err := s.files.Path(filecmd.StepSummary)
	if err != nil {
		return "", fmt.Errorf("unable to find step summary file, see %s: %w", DocsURL, err)
	}
	return path, nil
}

// Write appends the buffer to the summary file, or replaces the file when
// overwrite is set, and empties the buffer.
func (s *Summary) Write(overwrite bool) error {
	if _, err := s.Path(); err != nil {
		return err
	}
	data := []byte(s.buffer.String())
	var err error
	if overwrite {
		err = s.files.Overwrite(filecmd.StepSummary, data)
	} else {
		err = s.files.Append(filecmd.StepSummary, data)
	}
	if err != nil {
		return err
	}
	s.EmptyBuffer()
	return nil
}

// Clear empties both the buffer and the summary file.
func (s *Summary) Clear() error {
	s.EmptyBuffer()
	return s.Write(true)
}

// Stringify returns the buffered content.
func (s *Summary) Stringify() string {
	return s.buffer.String()
}

// IsEmptyBuffer reports whether nothing has been added since the last write.
func (s *Summary) IsEmptyBuffer() bool {
	return s.buffer.Len() == 0
}

// EmptyBuffer discards the buffered content without writing it.
func (s *Summary) EmptyBuffer() *Summary {
	s.buffer.Reset()
	return s
}

// AddRaw appends text as is, optionally followed by EOL.
func (s *Summary) AddRaw(text string, addEOL bool) *Summary {
	s.buffer.WriteString(text)
	if addEOL {
		s.AddEOL()
	}
	return s
}

// AddEOL appends a line break.
func (s *Summary) AddEOL() *Summary {
	return s.AddRaw(EOL, false)
}

// AddCodeBlock appends a pre-formatted block. lang may be empty.
func (s *Summary) AddCodeBlock(code, lang string) *Summary {
	var attrs []attr
	if lang != "" {
		attrs = append(attrs, attr{"lang", lang})
	}
	return s.AddRaw(wrapAttrs("pre", wrap("code", code), attrs), true)
}

// AddList appends a bulleted or numbered list.
func (s *Summary) AddList(items []string, ordered bool) *Summary {
	tag := "ul"
	if ordered {
		tag = "ol"
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString(wrap("li", item))
	}
	return s.AddRaw(wrap(tag, b.String()), true)
}

// AddTable appends a table. Each row is a slice of cells.
func (s *Summary) AddTable(rows [][]TableCell) *Summary {
	var body strings.Builder
	for _, row := range rows {
		var cells strings.Builder
		for _, cell := range row {
			tag := "td"
			if cell.Header {
				tag = "th"
			}
			var attrs []attr
			if cell.Colspan > 1 {
				attrs = append(attrs, attr{"colspan", strconv.Itoa(cell.Colspan)})
			}
			if cell.Rowspan > 1 {
				attrs = append(attrs, attr{"rowspan", strconv.Itoa(cell.Rowspan)})
			}
			cells.WriteString(wrapAttrs(tag, cell.Data, attrs))
		}
		body.WriteString(wrap("tr", cells.String()))
	}
	return s.AddRaw(wrap("table", body.String()), true)
}

// AddDetails appends a collapsible section.
func (s *Summary) AddDetails(label, content string) *Summary {
	return s.AddRaw(wrap("details", wrap("summary", label)+content), true)
}

// AddImage appends an image. opts may be nil.
func (s *Summary) AddImage(src, alt string, opts *ImageOptions) *Summary {
	attrs := []attr{{"src", src}, {"alt", alt}}
	if opts != nil {
		if opts.Width > 0 {
			attrs = append(attrs, attr{"width", strconv.Itoa(opts.Width)})
		}
		if opts.Height > 0 {
			attrs = append(attrs, attr{"height", strconv.Itoa(opts.Height)})
		}
	}
	return s.AddRaw(openTag("img", attrs), true)
}

// AddHeading appends a heading. Levels outside 1..6 become 1.
func (s *Summary) AddHeading(text string, level int) *Summary {
	if level < 1 || level > 6 {
		level = 1
	}
	return s.AddRaw(wrap("h"+strconv.Itoa(level), text), true)
}

// AddSeparator appends a horizontal rule.
func (s *Summary) AddSeparator() *Summary {
	return s.AddRaw("<hr>", true)
}

// AddBreak appends a line break element.
func (s *Summary) AddBreak() *Summary {
	return s.AddRaw("<br>", true)
}

// AddQuote appends a block quote. cite may be empty.
func (s *Summary) AddQuote(text, cite string) *Summary {
	var attrs []attr
	if cite != "" {
		attrs = append(attrs, attr{"cite", cite})
	}
	return s.AddRaw(wrapAttrs("blockquote", text, attrs), true)
}

// AddLink appends a hyperlink.
func (s *Summary) AddLink(text, href string) *Summary {
	return s.AddRaw(wrapAttrs("a", text, []attr{{"href", href}}), true)
}

// AddMarkdown renders markdown to sanitized HTML and appends it.
func (s *Summary) AddMarkdown(markdown string) *Summary {
	return s.AddRaw(strings.TrimRight(RenderMarkdown(markdown), "\n"), true)
}

type attr struct {
	key, value string
}

func formatAttrs(attrs []attr) string {
	var b strings.Builder
	for _, a := range attrs {
		fmt.Fprintf(&b, " %s=\"%s\"", a.key, html.EscapeString(a.value))
	}
	return b.String()
}

func openTag(tag string, attrs []attr) string {
	return "<" + tag + formatAttrs(attrs) + ">"
}

func wrap(tag, content string) string {
	return wrapAttrs(tag, content, nil)
}

func wrapAttrs(tag, content string, attrs []attr) string {
	return openTag(tag, attrs) + content + "</" + tag + ">"
}
