package manifest

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "empty_"},
		{"___", "underscore_"},
		{"token", "token"},
		{"some-input", "some_input"},
		{"$ref", "ref"},
		{"3d", "_3d"},
		{"a--b", "a_b"},
		{"type", "type_"},
		{"func", "func_"},
		{"$", "invalid_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Identifier(tt.in))
		})
	}
}

func TestExportedIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"who-to-greet", "WhoToGreet"},
		{"github_token", "GithubToken"},
		{"dry run", "DryRun"},
		{"type", "Type"},
		{"3d-model", "X3dModel"},
		{"$ref", "Ref"},
		{"", "Empty_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExportedIdentifier(tt.in))
		})
	}
}

func TestGenerate(t *testing.T) {
	m := parseGreeter(t)
	m.Inputs["name"] = Input{Description: "multi\nline description"}

	src, err := Generate(m, GenerateOptions{Package: "greeter", Source: "action.yml"})
	require.NoError(t, err)
	code := string(src)

	assert.True(t, strings.HasPrefix(code, "// Code generated by actions-core manifest gen from action.yml. DO NOT EDIT.\n"))
	assert.Contains(t, code, "package greeter")
	assert.Contains(t, code, `ActionInputWhoToGreet ActionInput = "who-to-greet"`)
	assert.Contains(t, code, `ActionOutputTime ActionOutput = "time"`)
	assert.Contains(t, code, "func (a *Action) WhoToGreet() (string, error)")
	assert.Contains(t, code, "func (a *Action) NameInput() (string, error)")
	assert.Contains(t, code, "// NameInput returns the \"name\" input. multi line description")
	assert.Contains(t, code, `return "Greeter"`)

	_, err = parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err)
}

func TestGenerate_Errors(t *testing.T) {
	m := parseGreeter(t)
	_, err := Generate(m, GenerateOptions{})
	require.ErrorContains(t, err, "package name is required")

	m.Inputs["who_to_greet"] = Input{}
	_, err = Generate(m, GenerateOptions{Package: "greeter"})
	require.ErrorContains(t, err, "both map to WhoToGreet")
}
