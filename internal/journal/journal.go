// Package journal reads and writes newline-delimited JSON request logs,
// the format the "replay" CLI mode (spec.md §6) consumes. It performs no
// parsing beyond what internal/net already defines — a journal entry is
// exactly one wire OrderRequest line.
package journal

import (
	"bufio"
	"fmt"
	"io"

	fnet "fenrir/internal/net"
)

// Reader yields parsed requests from a newline-delimited JSON stream, one
// internal/net.ParseRequest call per line. Blank lines are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader wraps r as a journal Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next request, or io.EOF when the journal is exhausted.
func (jr *Reader) Next() (any, error) {
	for jr.scanner.Scan() {
		jr.line++
		text := jr.scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		req, err := fnet.ParseRequest(text)
		if err != nil {
			return nil, fmt.Errorf("journal line %d: %w", jr.line, err)
		}
		return req, nil
	}
	if err := jr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Writer appends wire-form requests to a newline-delimited JSON stream.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a journal Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteLine appends a single raw JSON line (without its own trailing
// newline) to the journal.
func (jw *Writer) WriteLine(raw []byte) error {
	_, err := jw.w.Write(append(append([]byte{}, raw...), '\n'))
	return err
}
