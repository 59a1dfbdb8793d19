package zipcode

import (
	"bufio"
	"io"
	"iter"
)

const maxLineSize = 1024 * 1024

// LineReader hands out one line at a time without the trailing "\n" or
// "\r\n". Every returned string is an independent copy. A line is returned
// as soon as its terminator has been read, nothing is read ahead.
type LineReader struct {
	scanner *bufio.Scanner
	line    int
}

func NewLineReader(r io.Reader) *LineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &LineReader{scanner: scanner}
}

// Next returns the next line, or false at end of input or on a read error.
// A UTF-8 BOM at the start of the first line is dropped.
func (l *LineReader) Next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	l.line++
	if l.line == 1 {
		return stripBOM(l.scanner.Text()), true
	}
	return l.scanner.Text(), true
}

// Line is the 1-based number of the last line returned by Next.
func (l *LineReader) Line() int {
	return l.line
}

// Err returns the first non-EOF error encountered.
func (l *LineReader) Err() error {
	return l.scanner.Err()
}

// Lines yields the remaining lines. Check Err after the loop.
func (l *LineReader) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, ok := l.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}
