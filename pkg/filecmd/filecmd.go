package filecmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"actioncore/pkg/env"
)

// Channel names one file command channel.
type Channel string

const (
	Output      Channel = "OUTPUT"
	Env         Channel = "ENV"
	Path        Channel = "PATH"
	State       Channel = "STATE"
	StepSummary Channel = "STEP_SUMMARY"
)

// Variable returns the environment variable that holds the channel's file path.
func (c Channel) Variable() string {
	return "GITHUB_" + string(c)
}

// DelimiterPrefix starts every generated record delimiter.
const DelimiterPrefix = "ghadelimiter_"

var (
	// ErrChannelUnavailable means the channel's path variable is unset.
	ErrChannelUnavailable = errors.New("file command channel unavailable")
	// ErrDelimiterCollision means a key or value contains the record delimiter.
	ErrDelimiterCollision = errors.New("value contains the record delimiter")
	// ErrInvalidKey means a key is empty or spans more than one line.
	ErrInvalidKey = errors.New("invalid record key")
)

// SyncPolicy decides how durable a successful write is.
type SyncPolicy int

const (
	// SyncFlush hands the bytes to the OS before returning.
	SyncFlush SyncPolicy = iota
	// SyncFsync additionally fsyncs the file.
	SyncFsync
)

// SyncPolicyFromEnv returns SyncFsync when ACTIONS_CORE_FSYNC is "1" or "true".
func SyncPolicyFromEnv(r env.Reader) SyncPolicy {
	switch strings.ToLower(strings.TrimSpace(env.Get(r, "ACTIONS_CORE_FSYNC"))) {
	case "1", "true":
		return SyncFsync
	}
	return SyncFlush
}

// NewDelimiter returns a fresh random record delimiter.
func NewDelimiter() string {
	return DelimiterPrefix + uuid.NewString()
}

// FormatRecord formats one key/value record bounded by delimiter.
func FormatRecord(key, value, delimiter string) ([]byte, error) {
	if key == "" || strings.ContainsAny(key, "\r\n") {
		return nil, fmt.Errorf("key %q: %w", key, ErrInvalidKey)
	}
	if strings.Contains(key, delimiter) {
		return nil, fmt.Errorf("key %q: %w", key, ErrDelimiterCollision)
	}
	if strings.Contains(value, delimiter) {
		return nil, fmt.Errorf("value of %q: %w", key, ErrDelimiterCollision)
	}
	record := key + "<<" + delimiter + "\n" + value + "\n" + delimiter + "\n"
	return []byte(record), nil
}

// Writer appends records to the channel files named by an environment.
type Writer struct {
	env          env.Reader
	policy       SyncPolicy
	newDelimiter func() string
}

// NewWriter creates a Writer resolving channel paths from r.
func NewWriter(r env.Reader, policy SyncPolicy) *Writer {
	return &Writer{
		env:          r,
		policy:       policy,
		newDelimiter: NewDelimiter,
	}
}

// Path returns the file path of a channel.
func (w *Writer) Path(c Channel) (string, error) {
	path, ok := w.env.LookupEnv(c.Variable())
	if !ok || path == "" {
		return "", fmt.Errorf("%s is not set: %w", c.Variable(), ErrChannelUnavailable)
	}
	return path, nil
}

// Available reports whether the channel's path variable is set.
func (w *Writer) Available(c Channel) bool {
	_, err := w.Path(c)
	return err == nil
}

// WriteKeyValue appends one delimited key/value record.
func (w *Writer) WriteKeyValue(c Channel, key, value string) error {
	path, err := w.Path(c)
	if err != nil {
		return err
	}
	record, err := FormatRecord(key, value, w.newDelimiter())
	if err != nil {
		return err
	}
	return appendFile(path, record, w.policy)
}

// WriteLine appends a single line, as used by the PATH channel.
func (w *Writer) WriteLine(c Channel, line string) error {
	path, err := w.Path(c)
	if err != nil {
		return err
	}
	return appendFile(path, []byte(line+"\n"), w.policy)
}

// Append appends raw bytes.
func (w *Writer) Append(c Channel, data []byte) error {
	path, err := w.Path(c)
	if err != nil {
		return err
	}
	return appendFile(path, data, w.policy)
}

// Overwrite replaces the file's contents with data.
func (w *Writer) Overwrite(c Channel, data []byte) error {
	path, err := w.Path(c)
	if err != nil {
		return err
	}
	return replaceFile(path, data, w.policy)
}

func appendFile(path string, data []byte, policy SyncPolicy) error {
	// Read access keeps the handle lockable on windows, where O_APPEND
	// alone yields an append-only handle that LockFileEx rejects.
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file command %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return withLock(f, func() error {
		return writeAll(f, data, policy)
	})
}

func replaceFile(path string, data []byte, policy SyncPolicy) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file command %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return withLock(f, func() error {
		if err := f.Truncate(0); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", path, err)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("failed to rewind %s: %w", path, err)
		}
		return writeAll(f, data, policy)
	})
}

func writeAll(f *os.File, data []byte, policy SyncPolicy) error {
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write file command %s: %w", f.Name(), err)
	}
	if policy == SyncFsync {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("failed to sync %s: %w", f.Name(), err)
		}
	}
	return nil
}

// withLock holds an exclusive advisory lock on f while fn runs. The lock is
// released on every return path.
func withLock(f *os.File, fn func() error) (err error) {
	if err := lockFile(f); err != nil {
		return fmt.Errorf("failed to lock %s: %w", f.Name(), err)
	}
	defer func() {
		if unlockErr := unlockFile(f); unlockErr != nil && err == nil {
			err = fmt.Errorf("failed to unlock %s: %w", f.Name(), unlockErr)
		}
	}()
	return fn()
}
