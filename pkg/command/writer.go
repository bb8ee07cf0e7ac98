package command

import (
	"fmt"
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// Issuer writes commands and plain log lines to one io.Writer, normally the
// process's standard output. Each call writes one complete line; concurrent
// callers never interleave within a line.
type Issuer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewIssuer creates an Issuer that writes to w.
func NewIssuer(w io.Writer) *Issuer {
	return &Issuer{w: w}
}

// Issue writes the command followed by a newline and flushes the writer.
func (i *Issuer) Issue(c Command) error {
	line := append(Format(c), '\n')
	return i.write(line)
}

// Println writes a plain, unescaped log line.
func (i *Issuer) Println(line string) error {
	return i.write([]byte(line + "\n"))
}

func (i *Issuer) write(p []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, err := i.w.Write(p); err != nil {
		return fmt.Errorf("failed to write command: %w", err)
	}

	// *os.File is unbuffered; buffered writers are flushed per line.
	if f, ok := i.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("failed to flush command: %w", err)
		}
	}
	return nil
}
