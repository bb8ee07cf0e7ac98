// Package command encodes workflow commands. See doc.go for the wire format.
package command

import (
	"strings"
)

// Marker opens a command line and separates the properties from the message.
const Marker = "::"

var (
	dataEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	propertyEscaper = strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
		`"`, "%22",
	)
	dataUnescaper = strings.NewReplacer(
		"%0D", "\r",
		"%0A", "\n",
		"%25", "%",
	)
	propertyUnescaper = strings.NewReplacer(
		"%0D", "\r",
		"%0A", "\n",
		"%3A", ":",
		"%2C", ",",
		"%22", `"`,
		"%25", "%",
	)
)

// EscapeData escapes a command message.
func EscapeData(s string) string {
	return dataEscaper.Replace(s)
}

// EscapeProperty escapes a command property value.
func EscapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}

// UnescapeData reverses EscapeData.
func UnescapeData(s string) string {
	return dataUnescaper.Replace(s)
}

// UnescapeProperty reverses EscapeProperty.
func UnescapeProperty(s string) string {
	return propertyUnescaper.Replace(s)
}

// Property is a single key=value pair of a command.
type Property struct {
	Key   string
	Value string
}

// Properties keeps the insertion order of command properties.
type Properties []Property

// Set replaces the value of key, or appends it when absent.
func (p Properties) Set(key, value string) Properties {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Property{Key: key, Value: value})
}

// Get returns the value stored for key.
func (p Properties) Get(key string) (string, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// Command is a single workflow command.
type Command struct {
	Name       string
	Properties Properties
	Message    string
}

// New creates a command without properties.
func New(name, message string) Command {
	return Command{Name: name, Message: message}
}

// WithProperty returns a copy of the command with key set to value.
func (c Command) WithProperty(key, value string) Command {
	props := make(Properties, len(c.Properties), len(c.Properties)+1)
	copy(props, c.Properties)
	c.Properties = props.Set(key, value)
	return c
}

// String formats the command without the trailing newline.
func (c Command) String() string {
	return string(Format(c))
}

// Format formats a command into its wire representation.
// Format: "::name k=v,k=v::message" (no trailing newline)
func Format(c Command) []byte {
	var b strings.Builder
	b.WriteString(Marker)
	b.WriteString(c.Name)

	first := true
	for _, prop := range c.Properties {
		if prop.Value == "" {
			continue
		}
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteByte(',')
		}
		b.WriteString(prop.Key)
		b.WriteByte('=')
		b.WriteString(EscapeProperty(prop.Value))
	}

	b.WriteString(Marker)
	b.WriteString(EscapeData(c.Message))
	return []byte(b.String())
}
