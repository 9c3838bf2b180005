// internal/radio/errors.go
package radio

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConnected is returned by Connect when a session is open on a
	// different port or baud rate.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrPortUnavailable is returned when the serial device cannot be opened.
	ErrPortUnavailable = errors.New("port unavailable")

	// ErrNotConnected is returned by every exchange when no session is open.
	ErrNotConnected = errors.New("not connected")

	// ErrCommandModeRejected is returned when the radio does not answer the
	// "+++" escape with OK.
	ErrCommandModeRejected = errors.New("command mode rejected")

	// ErrReadFailure is returned when a parameter query produced no
	// parseable line.
	ErrReadFailure = errors.New("parameter read failed")

	// ErrWriteRejected is returned when the radio does not acknowledge a
	// parameter write.
	ErrWriteRejected = errors.New("parameter write rejected")

	// ErrPersistFailure is returned when AT&W is not acknowledged.
	ErrPersistFailure = errors.New("persist failed")

	// ErrRebootFailure is returned when ATZ is not acknowledged.
	ErrRebootFailure = errors.New("reboot failed")

	// ErrInvalidParameter is returned for identifiers that are not
	// S<digits> and for values containing control characters.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyCommand is returned when a command is blank after trimming.
	ErrEmptyCommand = errors.New("empty command")

	// ErrNonASCIICommand is returned when a command contains non-ASCII bytes.
	ErrNonASCIICommand = errors.New("non-ASCII command")

	// ErrIO wraps transport read and write failures.
	ErrIO = errors.New("serial I/O error")
)

var kindCodes = []struct {
	kind error
	code string
}{
	{ErrAlreadyConnected, "ALREADY_CONNECTED"},
	{ErrPortUnavailable, "PORT_UNAVAILABLE"},
	{ErrNotConnected, "NOT_CONNECTED"},
	{ErrCommandModeRejected, "COMMAND_MODE_REJECTED"},
	{ErrReadFailure, "READ_FAILURE"},
	{ErrWriteRejected, "WRITE_REJECTED"},
	{ErrPersistFailure, "PERSIST_FAILURE"},
	{ErrRebootFailure, "REBOOT_FAILURE"},
	{ErrInvalidParameter, "INVALID_PARAMETER"},
	{ErrEmptyCommand, "EMPTY_COMMAND"},
	{ErrNonASCIICommand, "NON_ASCII_COMMAND"},
	{ErrIO, "IO_ERROR"},
}

// Error is the failure type returned by every radio operation. Kind is one
// of the Err* sentinels; Err is the underlying transport error, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// Code returns the stable code for err's kind ("NOT_CONNECTED", ...) or
// an empty string when err did not come from this package.
func Code(err error) string {
	var radioErr *Error
	if !errors.As(err, &radioErr) {
		return ""
	}
	for _, kc := range kindCodes {
		if radioErr.Kind == kc.kind {
			return kc.code
		}
	}
	return ""
}
