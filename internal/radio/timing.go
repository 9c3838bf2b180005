// internal/radio/timing.go
package radio

import "time"

// DefaultBaudRate is the factory serial speed of SiK radios.
const DefaultBaudRate = 57600

// DefaultExitCommand leaves command mode and resumes data forwarding.
const DefaultExitCommand = "ATO"

// Timing holds every wait the protocol engine performs.
type Timing struct {
	// GuardTime is the silence required before "+++".
	GuardTime time.Duration
	// NegotiationTimeout bounds the wait for the "+++" acknowledgement.
	NegotiationTimeout time.Duration
	// SettleTime is slept after command mode is entered.
	SettleTime time.Duration
	// CommandTimeout bounds the response to a single command.
	CommandTimeout time.Duration
	// PollInterval is slept after a read that returned nothing.
	PollInterval time.Duration
	// ReadTimeout caps a single transport read.
	ReadTimeout time.Duration
}

// DefaultTiming returns the waits SiK firmware expects.
func DefaultTiming() Timing {
	return Timing{
		GuardTime:          1200 * time.Millisecond,
		NegotiationTimeout: 2500 * time.Millisecond,
		SettleTime:         200 * time.Millisecond,
		CommandTimeout:     1500 * time.Millisecond,
		PollInterval:       50 * time.Millisecond,
		ReadTimeout:        time.Second,
	}
}

// withDefaults fills zero fields from DefaultTiming.
func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.GuardTime <= 0 {
		t.GuardTime = d.GuardTime
	}
	if t.NegotiationTimeout <= 0 {
		t.NegotiationTimeout = d.NegotiationTimeout
	}
	if t.SettleTime <= 0 {
		t.SettleTime = d.SettleTime
	}
	if t.CommandTimeout <= 0 {
		t.CommandTimeout = d.CommandTimeout
	}
	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}
	if t.ReadTimeout <= 0 {
		t.ReadTimeout = d.ReadTimeout
	}
	return t
}
