// internal/radio/port.go
package radio

import "time"

//go:generate go tool mockgen -source=port.go -destination=mock_port_test.go -package=radio

// Port is an open byte stream to the radio.
//
// Read must return (0, nil) when the read timeout expires with no data, the
// way go.bug.st/serial ports do.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error

	// SetReadTimeout bounds how long a single Read may block.
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error

	// Drain blocks until written bytes have been transmitted.
	Drain() error
}

// Dialer opens a Port to the named device at the given baud rate.
type Dialer interface {
	Dial(name string, baudRate int) (Port, error)
}

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc func(name string, baudRate int) (Port, error)

// Dial calls f(name, baudRate).
func (f DialerFunc) Dial(name string, baudRate int) (Port, error) {
	return f(name, baudRate)
}
