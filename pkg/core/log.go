package core

import (
	"errors"
	"strconv"

	"actioncore/pkg/command"
)

// ErrUnbalancedGroup is returned by EndGroup when no group is open.
var ErrUnbalancedGroup = errors.New("endgroup without a matching group")

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelNotice:
		return "notice"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel returns the level named s.
func ParseLevel(s string) (Level, bool) {
	for l := LevelDebug; l <= LevelError; l++ {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// AnnotationProperties locate an annotation in the source tree. Zero values
// are left out of the command.
type AnnotationProperties struct {
	Title       string
	File        string
	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int
}

func (p *AnnotationProperties) properties() command.Properties {
	if p == nil {
		return nil
	}
	var props command.Properties
	add := func(key, value string) {
		if value != "" {
			props = append(props, command.Property{Key: key, Value: value})
		}
	}
	itoa := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	add("title", p.Title)
	add("file", p.File)
	add("line", itoa(p.StartLine))
	add("endLine", itoa(p.EndLine))
	add("col", itoa(p.StartColumn))
	add("endColumn", itoa(p.EndColumn))
	return props
}

// Log writes message at level. Notice, warning, and error become annotations
// carrying props; debug becomes a debug command; info is a plain line.
func (a *Action) Log(level Level, message string, props *AnnotationProperties) {
	switch level {
	case LevelInfo:
		a.println(message)
	case LevelDebug:
		a.Issue(command.New("debug", message))
	default:
		a.Issue(command.Command{
			Name:       level.String(),
			Properties: props.properties(),
			Message:    message,
		})
	}
}

// Debug writes a message that is only shown when step debugging is enabled.
func (a *Action) Debug(message string) {
	a.Log(LevelDebug, message, nil)
}

// Info writes a plain log line.
func (a *Action) Info(message string) {
	a.Log(LevelInfo, message, nil)
}

// Notice writes a notice annotation. props may be nil.
func (a *Action) Notice(message string, props *AnnotationProperties) {
	a.Log(LevelNotice, message, props)
}

// Warning writes a warning annotation. props may be nil.
func (a *Action) Warning(message string, props *AnnotationProperties) {
	a.Log(LevelWarning, message, props)
}

// Error writes an error annotation. It does not fail the action; see
// SetFailed. props may be nil.
func (a *Action) Error(message string, props *AnnotationProperties) {
	a.Log(LevelError, message, props)
}

// StartGroup opens a foldable log group. Groups nest.
func (a *Action) StartGroup(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.groupDepth++
	a.Issue(command.New("group", name))
}

// EndGroup closes the innermost open group. It returns ErrUnbalancedGroup,
// and emits nothing, when no group is open.
func (a *Action) EndGroup() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.groupDepth == 0 {
		return ErrUnbalancedGroup
	}
	a.groupDepth--
	a.Issue(command.New("endgroup", ""))
	return nil
}

// GroupDepth returns the number of open groups.
func (a *Action) GroupDepth() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.groupDepth
}

// Group runs fn inside a log group. The group is closed when fn returns or
// panics.
func (a *Action) Group(name string, fn func() error) (err error) {
	a.StartGroup(name)
	defer func() {
		err = errors.Join(err, a.EndGroup())
	}()
	return fn()
}

// SetCommandEcho turns echoing of workflow commands in the log on or off.
func (a *Action) SetCommandEcho(enabled bool) {
	message := "off"
	if enabled {
		message = "on"
	}
	a.Issue(command.New("echo", message))
}
