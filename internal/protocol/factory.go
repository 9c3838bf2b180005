// internal/protocol/factory.go
package protocol

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sik-configurator/internal/radio"
	"sik-configurator/internal/simulator"
)

// ErrSimulatorDisabled is returned when a simulated port is dialed without
// a simulator.
var ErrSimulatorDisabled = errors.New("radio simulator is not enabled")

// Factory opens radio ports. Names with the simulator scheme are served by
// the simulator, everything else by a serial device.
type Factory struct {
	defaults  SerialConfig
	simulator *simulator.Dialer
	logger    *zap.Logger
}

// NewFactory creates a factory. sim may be nil. Zero framing fields in
// defaults fall back to DefaultSerialConfig.
func NewFactory(defaults SerialConfig, sim *simulator.Dialer, logger *zap.Logger) *Factory {
	fallback := DefaultSerialConfig()
	if defaults.DataBits <= 0 {
		defaults.DataBits = fallback.DataBits
	}
	if defaults.StopBits <= 0 {
		defaults.StopBits = fallback.StopBits
	}
	if defaults.Parity == "" {
		defaults.Parity = fallback.Parity
	}
	if defaults.ReadTimeout <= 0 {
		defaults.ReadTimeout = fallback.ReadTimeout
	}
	if defaults.WriteTimeout <= 0 {
		defaults.WriteTimeout = fallback.WriteTimeout
	}
	return &Factory{
		defaults:  defaults,
		simulator: sim,
		logger:    logger,
	}
}

// Dial implements radio.Dialer.
func (f *Factory) Dial(name string, baudRate int) (radio.Port, error) {
	if simulator.Handles(name) {
		if f.simulator == nil {
			return nil, fmt.Errorf("%s: %w", name, ErrSimulatorDisabled)
		}
		f.logger.Info("Creating simulated protocol", zap.String("port", name))
		device, err := f.simulator.Open(name, baudRate)
		if err != nil {
			return nil, err
		}
		return device, nil
	}

	if name == "" {
		return nil, fmt.Errorf("serial port is required")
	}
	if baudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate: %d", baudRate)
	}

	config := f.defaults
	config.Port = name
	config.BaudRate = baudRate

	f.logger.Info("Creating serial protocol",
		zap.String("port", config.Port),
		zap.Int("baud_rate", config.BaudRate),
	)

	conn := NewSerialConnection(config, f.logger)
	if err := conn.Open(); err != nil {
		return nil, err
	}
	return conn, nil
}
