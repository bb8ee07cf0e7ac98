package manifest

import (
	"go/token"
	"strings"
	"unicode"
)

// Identifier turns an arbitrary input name into a valid Go identifier:
// a leading '$' is dropped, invalid characters become '_', a leading digit
// gets a '_' prefix, runs of '_' collapse, and keywords get a '_' suffix.
func Identifier(s string) string {
	if s == "" {
		return "empty_"
	}
	if strings.Trim(s, "_") == "" {
		return "underscore_"
	}

	s = strings.TrimPrefix(s, "$")
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
	if first := []rune(s); len(first) > 0 && unicode.IsDigit(first[0]) {
		s = "_" + s
	}
	s = collapseUnderscores(s)

	if s == "" {
		return "invalid_"
	}
	if token.IsKeyword(s) {
		return s + "_"
	}
	return s
}

// ExportedIdentifier turns an input name into an exported Go identifier by
// splitting on spaces, underscores and dashes and capitalizing every part.
// Names that do not start with a letter get an "X" prefix.
func ExportedIdentifier(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	id := capitalize(Identifier(strings.Join(parts, "")))
	if r := []rune(id); !unicode.IsUpper(r[0]) {
		id = "X" + strings.TrimPrefix(id, "_")
	}
	return id
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	prev := rune(0)
	for _, r := range s {
		if r == '_' && prev == '_' {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
