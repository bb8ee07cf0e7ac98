package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actioncore/pkg/env"
	"actioncore/pkg/filecmd"
)

func newSummary(t *testing.T) (*Summary, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "step_summary")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	files := filecmd.NewWriter(env.NewMap(map[string]string{
		filecmd.StepSummary.Variable(): path,
	}), filecmd.SyncFlush)
	return New(files), path
}

func readSummary(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBuilder(t *testing.T) {
	tests := []struct {
		name  string
		build func(s *Summary)
		want  string
	}{
		{
			name:  "raw without eol",
			build: func(s *Summary) { s.AddRaw("text", false) },
			want:  "text",
		},
		{
			name:  "raw with eol",
			build: func(s *Summary) { s.AddRaw("text", true) },
			want:  "text\n",
		},
		{
			name:  "heading",
			build: func(s *Summary) { s.AddHeading("Results", 2) },
			want:  "<h2>Results</h2>\n",
		},
		{
			name:  "heading level out of range",
			build: func(s *Summary) { s.AddHeading("Results", 9) },
			want:  "<h1>Results</h1>\n",
		},
		{
			name:  "code block",
			build: func(s *Summary) { s.AddCodeBlock("go test ./...", "sh") },
			want:  "<pre lang=\"sh\"><code>go test ./...</code></pre>\n",
		},
		{
			name:  "code block without language",
			build: func(s *Summary) { s.AddCodeBlock("x", "") },
			want:  "<pre><code>x</code></pre>\n",
		},
		{
			name:  "unordered list",
			build: func(s *Summary) { s.AddList([]string{"a", "b"}, false) },
			want:  "<ul><li>a</li><li>b</li></ul>\n",
		},
		{
			name:  "ordered list",
			build: func(s *Summary) { s.AddList([]string{"a"}, true) },
			want:  "<ol><li>a</li></ol>\n",
		},
		{
			name: "table",
			build: func(s *Summary) {
				s.AddTable([][]TableCell{
					{HeaderCell("File"), HeaderCell("Result")},
					{Cell("a.go"), {Data: "ok", Colspan: 2, Rowspan: 3}},
				})
			},
			want: "<table><tr><th>File</th><th>Result</th></tr>" +
				"<tr><td>a.go</td><td colspan=\"2\" rowspan=\"3\">ok</td></tr></table>\n",
		},
		{
			name:  "details",
			build: func(s *Summary) { s.AddDetails("More", "hidden") },
			want:  "<details><summary>More</summary>hidden</details>\n",
		},
		{
			name:  "image",
			build: func(s *Summary) { s.AddImage("a.png", "A", &ImageOptions{Width: 32, Height: 16}) },
			want:  "<img src=\"a.png\" alt=\"A\" width=\"32\" height=\"16\">\n",
		},
		{
			name:  "image without size",
			build: func(s *Summary) { s.AddImage("a.png", "say \"hi\"", nil) },
			want:  "<img src=\"a.png\" alt=\"say &#34;hi&#34;\">\n",
		},
		{
			name:  "separator and break",
			build: func(s *Summary) { s.AddSeparator().AddBreak() },
			want:  "<hr>\n<br>\n",
		},
		{
			name:  "quote",
			build: func(s *Summary) { s.AddQuote("wise words", "https://example.com") },
			want:  "<blockquote cite=\"https://example.com\">wise words</blockquote>\n",
		},
		{
			name:  "quote without cite",
			build: func(s *Summary) { s.AddQuote("wise words", "") },
			want:  "<blockquote>wise words</blockquote>\n",
		},
		{
			name:  "link",
			build: func(s *Summary) { s.AddLink("docs", "https://example.com") },
			want:  "<a href=\"https://example.com\">docs</a>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSummary(t)
			tt.build(s)
			assert.Equal(t, tt.want, s.Stringify())
		})
	}
}

func TestAddMarkdown(t *testing.T) {
	s, _ := newSummary(t)
	s.AddMarkdown("**bold** <script>alert(1)</script>")

	out := s.Stringify()
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestWrite_AppendsAndEmptiesBuffer(t *testing.T) {
	s, path := newSummary(t)

	require.NoError(t, s.AddHeading("One", 1).Write(false))
	assert.True(t, s.IsEmptyBuffer())
	require.NoError(t, s.AddHeading("Two", 1).Write(false))

	assert.Equal(t, "<h1>One</h1>\n<h1>Two</h1>\n", readSummary(t, path))
}

func TestWrite_Overwrite(t *testing.T) {
	s, path := newSummary(t)

	require.NoError(t, s.AddRaw("old", true).Write(false))
	require.NoError(t, s.AddRaw("new", true).Write(true))
	assert.Equal(t, "new\n", readSummary(t, path))

	require.NoError(t, s.AddRaw("pending", false).Clear())
	assert.Equal(t, "", readSummary(t, path))
	assert.True(t, s.IsEmptyBuffer())
}

func TestWrite_ChannelUnavailable(t *testing.T) {
	s := New(filecmd.NewWriter(env.NewMap(nil), filecmd.SyncFlush))
	s.AddRaw("kept", false)

	err := s.Write(false)
	require.ErrorIs(t, err, filecmd.ErrChannelUnavailable)
	assert.Contains(t, err.Error(), DocsURL)
	assert.Equal(t, "kept", s.Stringify())
}
