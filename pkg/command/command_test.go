package command

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello world", "hello world"},
		{"percent", "100%", "100%25"},
		{"carriage return", "a\rb", "a%0Db"},
		{"line feed", "a\nb", "a%0Ab"},
		{"crlf", "a\r\nb", "a%0D%0Ab"},
		{"colon and comma untouched", "a:b,c", "a:b,c"},
		{"already escaped is escaped again", "%0A", "%250A"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, EscapeData(tt.input))
		})
	}
}

func TestEscapeProperty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "main.go", "main.go"},
		{"colon", "C:\\src", "C%3A\\src"},
		{"comma", "a,b", "a%2Cb"},
		{"double quote", `say "hi"`, "say %22hi%22"},
		{"newline and percent", "50%\nnext", "50%25%0Anext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, EscapeProperty(tt.input))
		})
	}
}

func TestEscapeData_NoRawControlCharacters(t *testing.T) {
	inputs := []string{
		"\r\n\r\n",
		"%%%",
		"line1\nline2\r\nline3",
		string([]byte{0x00, '\r', 0xff, '\n', '%'}),
	}
	for _, input := range inputs {
		escaped := EscapeData(input)
		require.NotContains(t, escaped, "\r")
		require.NotContains(t, escaped, "\n")
		// every remaining percent sign starts an escape sequence
		for i := 0; i < len(escaped); i++ {
			if escaped[i] != '%' {
				continue
			}
			require.Less(t, i+2, len(escaped))
			seq := escaped[i : i+3]
			require.Contains(t, []string{"%25", "%0D", "%0A"}, seq)
		}
	}
}

func TestUnescape_ReversesEscape(t *testing.T) {
	for _, input := range []string{"a:b,c\"d%e\rf\ng", "%250A", "", "plain"} {
		require.Equal(t, input, UnescapeData(EscapeData(input)))
		require.Equal(t, input, UnescapeProperty(EscapeProperty(input)))
	}
}

func TestFormat_NoProperties(t *testing.T) {
	result := Format(New("endgroup", ""))
	require.Equal(t, "::endgroup::", string(result))

	result = Format(New("debug", "hello"))
	require.Equal(t, "::debug::hello", string(result))
}

func TestFormat_EmptyPropertiesAreOmitted(t *testing.T) {
	c := Command{
		Name:       "warning",
		Properties: Properties{{Key: "title", Value: ""}, {Key: "file", Value: ""}},
		Message:    "msg",
	}
	require.Equal(t, "::warning::msg", string(Format(c)))
}

func TestFormat_PropertiesKeepOrder(t *testing.T) {
	c := New("error", "bad\nthing").
		WithProperty("file", "src/a,b.go").
		WithProperty("line", "").
		WithProperty("col", "7").
		WithProperty("title", "Oops: x")

	require.Equal(t, "::error file=src/a%2Cb.go,col=7,title=Oops%3A x::bad%0Athing", c.String())
}

func TestWithProperty_DoesNotMutateOriginal(t *testing.T) {
	base := New("notice", "m").WithProperty("file", "a.go")
	derived := base.WithProperty("file", "b.go")

	v, _ := base.Properties.Get("file")
	require.Equal(t, "a.go", v)
	v, _ = derived.Properties.Get("file")
	require.Equal(t, "b.go", v)
}

func TestIssuer_Issue(t *testing.T) {
	var buf bytes.Buffer
	issuer := NewIssuer(&buf)

	require.NoError(t, issuer.Issue(New("add-mask", "s3cr3t")))
	require.NoError(t, issuer.Println("plain text"))
	require.NoError(t, issuer.Issue(New("set-output", "a\nb").WithProperty("name", "result")))

	require.Equal(t, "::add-mask::s3cr3t\nplain text\n::set-output name=result::a%0Ab\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestIssuer_WriteError(t *testing.T) {
	issuer := NewIssuer(failingWriter{})
	err := issuer.Issue(New("debug", "x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "closed")
}

func TestIssuer_ConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	issuer := NewIssuer(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = issuer.Issue(New("debug", strings.Repeat("x", 512)))
		}()
	}
	wg.Wait()

	commands, err := Commands(&buf)
	require.NoError(t, err)
	require.Len(t, commands, 50)
	for _, c := range commands {
		require.Equal(t, "debug", c.Name)
		require.Len(t, c.Message, 512)
	}
}
