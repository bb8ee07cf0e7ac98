package manifest

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
)

// GenerateOptions names the package and type of generated code.
type GenerateOptions struct {
	Package string
	// Type is the name of the generated accessor struct. Defaults to
	// "Action".
	Type string
	// Source is recorded in the generated header, usually the manifest path.
	Source string
}

type genInput struct {
	Name   string
	Ident  string
	Method string
	Input  Input
}

type genOutput struct {
	Name        string
	Ident       string
	Description string
}

// reservedMethods are defined on every generated type.
var reservedMethods = map[string]bool{
	"Name":        true,
	"Description": true,
	"Author":      true,
	"Inputs":      true,
	"Input":       true,
}

type genData struct {
	GenerateOptions
	Manifest *Manifest
	Inputs   []genInput
	Outputs  []genOutput
}

var genTemplate = template.Must(template.New("gen").Funcs(template.FuncMap{
	"quote":   strconv.Quote,
	"oneline": func(s string) string { return strings.Join(strings.Fields(s), " ") },
}).Parse(`// Code generated by actions-core manifest gen{{with .Source}} from {{.}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
	"actioncore/pkg/env"
	"actioncore/pkg/manifest"
)

// {{.Type}}Input names an input of the {{quote .Manifest.Name}} action.
type {{.Type}}Input string

const (
{{- range .Inputs}}
	{{$.Type}}Input{{.Ident}} {{$.Type}}Input = {{quote .Name}}
{{- end}}
)

// {{.Type}}Output names an output of the {{quote .Manifest.Name}} action.
type {{.Type}}Output string

const (
{{- range .Outputs}}
{{- with .Description}}
	// {{oneline .}}
{{- end}}
	{{$.Type}}Output{{.Ident}} {{$.Type}}Output = {{quote .Name}}
{{- end}}
)

// {{.Type}} reads the inputs declared by the action metadata.
type {{.Type}} struct {
	env env.Reader
}

// New{{.Type}} creates a {{.Type}} reading from r.
func New{{.Type}}(r env.Reader) *{{.Type}} {
	return &{{.Type}}{env: r}
}

// Name returns the name of the action.
func (*{{.Type}}) Name() string {
	return {{quote .Manifest.Name}}
}

// Description returns the description of the action.
func (*{{.Type}}) Description() string {
	return {{quote .Manifest.Description}}
}

// Author returns the author of the action.
func (*{{.Type}}) Author() string {
	return {{quote .Manifest.Author}}
}

// Inputs returns the declared inputs.
func (*{{.Type}}) Inputs() map[{{.Type}}Input]manifest.Input {
	return map[{{.Type}}Input]manifest.Input{
{{- range .Inputs}}
		{{$.Type}}Input{{.Ident}}: {
			Description:        {{quote .Input.Description}},
			DeprecationMessage: {{quote .Input.DeprecationMessage}},
			Default:            {{quote .Input.Default}},
			Required:           {{.Input.Required}},
		},
{{- end}}
	}
}

// Input resolves a declared input.
func (a *{{.Type}}) Input(name {{.Type}}Input) (string, error) {
	return manifest.ResolveInput(a.env, string(name), a.Inputs()[name])
}
{{range .Inputs}}
// {{.Method}} returns the {{quote .Name}} input.{{with .Input.Description}} {{oneline .}}{{end}}
func (a *{{$.Type}}) {{.Method}}() (string, error) {
	return a.Input({{$.Type}}Input{{.Ident}})
}
{{end}}`))

// Generate renders Go source with typed accessors for the inputs of m.
func Generate(m *Manifest, opts GenerateOptions) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if opts.Type == "" {
		opts.Type = "Action"
	}

	data := genData{GenerateOptions: opts, Manifest: m}
	seen := make(map[string]string)
	for _, name := range m.InputNames() {
		ident := ExportedIdentifier(name)
		if other, ok := seen[ident]; ok {
			return nil, fmt.Errorf("inputs %q and %q both map to %s", other, name, ident)
		}
		seen[ident] = name
		method := ident
		if reservedMethods[method] {
			method += "Input"
		}
		data.Inputs = append(data.Inputs, genInput{
			Name:   name,
			Ident:  ident,
			Method: method,
			Input:  m.Inputs[name],
		})
	}
	for _, name := range m.OutputNames() {
		data.Outputs = append(data.Outputs, genOutput{
			Name:        name,
			Ident:       ExportedIdentifier(name),
			Description: m.Outputs[name].Description,
		})
	}

	var buf bytes.Buffer
	if err := genTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}
