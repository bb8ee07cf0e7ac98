package core

import (
	"actioncore/pkg/command"
	"actioncore/pkg/filecmd"
)

// CommandChannel delivers key/value commands (outputs, exported variables,
// path entries, saved state) to the runner.
type CommandChannel interface {
	// Send delivers one entry. The PATH channel ignores key.
	Send(key, value string) error
	// Transport names the mechanism, "file" or "stdout".
	Transport() string
}

// FileChannel appends entries to the channel file named by the environment.
type FileChannel struct {
	writer  *filecmd.Writer
	channel filecmd.Channel
}

var _ CommandChannel = (*FileChannel)(nil)

// NewFileChannel creates a FileChannel for c.
func NewFileChannel(writer *filecmd.Writer, c filecmd.Channel) *FileChannel {
	return &FileChannel{writer: writer, channel: c}
}

func (f *FileChannel) Send(key, value string) error {
	if f.channel == filecmd.Path {
		return f.writer.WriteLine(f.channel, value)
	}
	return f.writer.WriteKeyValue(f.channel, key, value)
}

func (f *FileChannel) Transport() string {
	return "file"
}

// LegacyChannel emits entries as stdout commands, for runners that predate
// file commands.
type LegacyChannel struct {
	name  string
	issue func(command.Command) error
}

var _ CommandChannel = (*LegacyChannel)(nil)

// NewLegacyChannel creates a LegacyChannel emitting the command name through
// issue.
func NewLegacyChannel(name string, issue func(command.Command) error) *LegacyChannel {
	return &LegacyChannel{name: name, issue: issue}
}

func (l *LegacyChannel) Send(key, value string) error {
	c := command.New(l.name, value)
	if key != "" {
		c = c.WithProperty("name", key)
	}
	return l.issue(c)
}

func (l *LegacyChannel) Transport() string {
	return "stdout"
}

var legacyCommands = map[filecmd.Channel]string{
	filecmd.Output: "set-output",
	filecmd.Env:    "set-env",
	filecmd.Path:   "add-path",
	filecmd.State:  "save-state",
}

// selectChannels picks the file transport for every channel whose path
// variable is set and the legacy stdout command otherwise.
func selectChannels(files *filecmd.Writer, issue func(command.Command) error) map[filecmd.Channel]CommandChannel {
	channels := make(map[filecmd.Channel]CommandChannel, len(legacyCommands))
	for c, name := range legacyCommands {
		if files.Available(c) {
			channels[c] = NewFileChannel(files, c)
		} else {
			channels[c] = NewLegacyChannel(name, issue)
		}
	}
	return channels
}
