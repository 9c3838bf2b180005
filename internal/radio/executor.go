// internal/radio/executor.go
package radio

import (
	"io"
	"strings"
)

// exchange performs one command/response round trip through the
// connection's reader.
//
// The command is trimmed; sanitize discards unread input first. The caller
// must hold the session lock.
func exchange(reader *lineReader, command string, sanitize bool) ([]string, error) {
	prepared := strings.TrimSpace(command)
	if prepared == "" {
		return nil, newError(ErrEmptyCommand, nil, "command must not be empty")
	}

	if sanitize {
		if err := reader.discard(); err != nil {
			return nil, newError(ErrIO, err, "failed to reset input buffer before %q", prepared)
		}
	}

	if !isASCII(prepared) {
		return nil, newError(ErrNonASCIICommand, nil, "command %q contains non-ASCII characters", prepared)
	}

	if err := writeAll(reader.port, []byte(prepared+CRLF)); err != nil {
		return nil, newError(ErrIO, err, "failed to write command %q", prepared)
	}

	lines, err := reader.readResponse(reader.timing.CommandTimeout, DefaultStopTokens)
	if err != nil {
		return nil, newError(ErrIO, err, "serial read failed")
	}
	return lines, nil
}

// writeAll writes data and waits for it to leave the output buffer.
func writeAll(port Port, data []byte) error {
	for len(data) > 0 {
		n, err := port.Write(data)
		if err != nil {
			return err
		}
		if n <= 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return port.Drain()
}
