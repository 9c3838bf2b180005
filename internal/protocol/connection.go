// internal/protocol/connection.go
package protocol

import "time"

// SerialConfig represents serial connection configuration
type SerialConfig struct {
	Port         string        `json:"port"`
	BaudRate     int           `json:"baud_rate"`
	DataBits     int           `json:"data_bits"`
	StopBits     int           `json:"stop_bits"`
	Parity       string        `json:"parity"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// DefaultSerialConfig returns the 8N1 framing SiK radios use.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		BaudRate:     57600,
		DataBits:     8,
		StopBits:     1,
		Parity:       "none",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}
