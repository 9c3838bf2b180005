// internal/protocol/protocol.go
package protocol

import "sik-configurator/internal/radio"

// Connection is a radio.Port that also reports transport statistics.
type Connection interface {
	radio.Port
	radio.StatsReporter
}

var _ Connection = (*SerialConnection)(nil)
