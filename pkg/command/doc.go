// Package command encodes workflow commands, the line protocol an action uses
// to talk to the runner over standard output.
//
// # Overview
//
// Each command occupies exactly one line of standard output:
//
//	::name key=value,key=value::message
//
// When a command carries no properties the space and the property list are
// omitted entirely:
//
//	::name::message
//
// # Fields
//
//   - name: the command token, for example debug, notice, warning, error,
//     group, endgroup, add-mask, echo, set-output. Names are written as is.
//   - properties: comma separated key=value pairs in insertion order. Keys are
//     written as is. Properties with an empty value are left out.
//   - message: the payload. It may be empty.
//
// # Escaping
//
// Messages are escaped with EscapeData:
//
//	%  -> %25
//	\r -> %0D
//	\n -> %0A
//
// Property values are escaped with EscapeProperty, which applies the data rules
// and also protects the property list delimiters:
//
//	:  -> %3A
//	,  -> %2C
//	"  -> %22
//
// Escaping is a single pass over the input and is not idempotent. Escaping an
// escaped string escapes it again, so callers escape exactly once, at the point
// where a Command is formatted.
//
// # Examples
//
//	::debug::connecting to api.example.com
//	::warning file=main.go,line=12,col=3::unused variable%0Ain function main
//	::add-mask::s3cr3t
//	::group::Build
//	::endgroup::
package command
