package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line is one line of standard output, either a command or plain text.
type Line struct {
	Command *Command // nil for plain text
	Text    string   // raw line without the trailing newline
}

// Parse decodes a single line. It returns false when the line is not a
// workflow command.
func Parse(line string) (Command, bool) {
	if !strings.HasPrefix(line, Marker) {
		return Command{}, false
	}
	rest := line[len(Marker):]

	end := strings.Index(rest, Marker)
	if end < 0 {
		return Command{}, false
	}
	head := rest[:end]
	message := rest[end+len(Marker):]

	name, props, hasProps := strings.Cut(head, " ")
	if name == "" {
		return Command{}, false
	}

	c := Command{Name: name, Message: UnescapeData(message)}
	if hasProps && props != "" {
		for _, pair := range strings.Split(props, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				continue
			}
			c.Properties = append(c.Properties, Property{Key: key, Value: UnescapeProperty(value)})
		}
	}
	return c, true
}

// ReadAll splits r into lines and decodes every workflow command.
func ReadAll(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		line := Line{Text: text}
		if c, ok := Parse(text); ok {
			line.Command = &c
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading command output: %w", err)
	}
	return lines, nil
}

// Commands returns only the commands of ReadAll, in order.
func Commands(r io.Reader) ([]Command, error) {
	lines, err := ReadAll(r)
	var commands []Command
	for _, line := range lines {
		if line.Command != nil {
			commands = append(commands, *line.Command)
		}
	}
	return commands, err
}
