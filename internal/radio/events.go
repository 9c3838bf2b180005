// internal/radio/events.go
package radio

import "time"

// EventType identifies what happened to the radio session.
type EventType string

const (
	EventConnected        EventType = "connected"
	EventDisconnected     EventType = "disconnected"
	EventCommand          EventType = "command"
	EventParameterUpdated EventType = "parameter_updated"
	EventRebooted         EventType = "rebooted"
)

// Event describes a session change or a completed exchange.
type Event struct {
	Type      EventType       `json:"type"`
	SessionID string          `json:"session_id,omitempty"`
	Port      string          `json:"port,omitempty"`
	BaudRate  int             `json:"baudrate,omitempty"`
	Command   string          `json:"command,omitempty"`
	Response  []string        `json:"response,omitempty"`
	Parameter *ParameterEntry `json:"parameter,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Duration  time.Duration   `json:"duration,omitempty"`
	ErrorCode string          `json:"error_code,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// EventSink receives radio events. RadioEvent is called with the session
// lock held and must not block or call back into the Service.
type EventSink interface {
	RadioEvent(event Event)
}

type discardSink struct{}

func (discardSink) RadioEvent(Event) {}
