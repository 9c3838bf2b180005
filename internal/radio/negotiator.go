// internal/radio/negotiator.go
package radio

import "time"

// negotiate escapes into command mode with the guard-time "+++" sequence.
func negotiate(reader *lineReader) error {
	port, timing := reader.port, reader.timing
	time.Sleep(timing.GuardTime)

	if err := reader.discard(); err != nil {
		return newError(ErrIO, err, "failed to reset input buffer")
	}
	if err := port.ResetOutputBuffer(); err != nil {
		return newError(ErrIO, err, "failed to reset output buffer")
	}

	if err := writeAll(port, []byte(EscapeSequence)); err != nil {
		return newError(ErrIO, err, "failed to send command mode request")
	}

	lines, err := reader.readResponse(timing.NegotiationTimeout, negotiationStopTokens)
	if err != nil {
		return newError(ErrIO, err, "serial read failed")
	}
	if !didSucceed(lines) {
		return newError(ErrCommandModeRejected, nil, "radio did not acknowledge command mode request ('+++')")
	}

	time.Sleep(timing.SettleTime)
	return nil
}
