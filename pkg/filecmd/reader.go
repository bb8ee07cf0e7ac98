package filecmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one key/value entry of an OUTPUT, ENV, or STATE file.
type Record struct {
	Key   string
	Value string
}

// ReadRecords parses a key/value channel file. Both the delimited form and the
// single line "key=value" form are accepted.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	scanner.Split(scanRawLines)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		if key, delimiter, ok := strings.Cut(line, "<<"); ok && !strings.Contains(key, "=") {
			var value []string
			closed := false
			for scanner.Scan() {
				lineNo++
				if scanner.Text() == delimiter {
					closed = true
					break
				}
				value = append(value, scanner.Text())
			}
			if !closed {
				return records, fmt.Errorf("line %d: record %q has no closing delimiter", lineNo, key)
			}
			records = append(records, Record{Key: key, Value: strings.Join(value, "\n")})
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return records, fmt.Errorf("line %d: invalid record %q", lineNo, line)
		}
		records = append(records, Record{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}

// ReadRecordsFile parses the key/value channel file at path.
func ReadRecordsFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadRecords(f)
}

// Lookup returns the last value recorded for key, matching the runner's
// last-write-wins rule.
func Lookup(records []Record, key string) (string, bool) {
	value, found := "", false
	for _, rec := range records {
		if rec.Key == key {
			value, found = rec.Value, true
		}
	}
	return value, found
}

// scanRawLines splits on \n only, so a \r inside a multi-line value survives.
func scanRawLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
