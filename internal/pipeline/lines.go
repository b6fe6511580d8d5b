package pipeline

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineReader reads newline-delimited text of any length, stripping the
// trailing "\n" or "\r\n" from each line.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line. A final line without a terminator is returned
// normally; io.EOF is returned only once no bytes remain.
func (l *LineReader) Next() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
