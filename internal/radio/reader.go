// internal/radio/reader.go
package radio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

const readChunkSize = 256

// lineReader reads CRLF-delimited lines from a Port. It lives as long as
// the connection, so bytes that arrive after the line a response ends on
// are returned by the next read unless discard clears them.
type lineReader struct {
	port    Port
	timing  Timing
	pending []byte
	chunk   []byte
}

func newLineReader(port Port, timing Timing) *lineReader {
	return &lineReader{
		port:   port,
		timing: timing,
		chunk:  make([]byte, readChunkSize),
	}
}

// readResponse collects trimmed, non-blank lines until one equals a stop
// token or timeout elapses. The stop token is included in the result.
func (r *lineReader) readResponse(timeout time.Duration, stopTokens []string) ([]string, error) {
	deadline := time.Now().Add(timeout)
	var lines []string

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return lines, nil
		}

		raw, err := r.readLine(min(remaining, r.timing.ReadTimeout))
		if err != nil {
			return lines, err
		}

		if len(raw) == 0 {
			if wait := min(r.timing.PollInterval, time.Until(deadline)); wait > 0 {
				time.Sleep(wait)
			}
			continue
		}

		line := strings.TrimSpace(decodeLine(raw))
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if IsStopToken(line, stopTokens) {
			return lines, nil
		}
	}
}

// readLine returns bytes up to and including the next '\n', or whatever
// arrived before limit expired.
func (r *lineReader) readLine(limit time.Duration) ([]byte, error) {
	end := time.Now().Add(limit)
	for {
		if i := bytes.IndexByte(r.pending, '\n'); i >= 0 {
			line := make([]byte, i+1)
			copy(line, r.pending[:i+1])
			r.pending = r.pending[i+1:]
			return line, nil
		}

		remaining := time.Until(end)
		if remaining <= 0 {
			return r.takePending(), nil
		}
		if err := r.port.SetReadTimeout(remaining); err != nil {
			return nil, err
		}

		n, err := r.port.Read(r.chunk)
		if n > 0 {
			r.pending = append(r.pending, r.chunk[:n]...)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if n == 0 {
			return r.takePending(), nil
		}
	}
}

// discard drops buffered bytes along with the port's input buffer.
func (r *lineReader) discard() error {
	r.pending = nil
	return r.port.ResetInputBuffer()
}

func (r *lineReader) takePending() []byte {
	line := r.pending
	r.pending = nil
	return line
}

// decodeLine decodes UTF-8, replacing invalid sequences with U+FFFD.
func decodeLine(raw []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(decoded)
}
