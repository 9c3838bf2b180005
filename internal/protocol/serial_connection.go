// internal/protocol/serial_connection.go
package protocol

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"sik-configurator/internal/radio"
)

var (
	// ErrPortClosed is returned by I/O on a closed connection.
	ErrPortClosed = errors.New("serial port not open")
	// ErrWriteTimeout is returned when a write does not finish within the
	// configured write timeout.
	ErrWriteTimeout = errors.New("serial write timed out")
	// ErrWriteBusy is returned while a timed-out write is still blocked
	// in the driver.
	ErrWriteBusy = errors.New("previous serial write still pending")
)

// openPort is replaced in tests.
var openPort = serial.Open

// SerialConnection is a radio.Port backed by a serial device.
type SerialConnection struct {
	config SerialConfig
	logger *zap.Logger

	mutex sync.RWMutex
	port  serial.Port

	// writing is set while a driver write is in flight, including one the
	// caller stopped waiting for.
	writing atomic.Bool

	bytesWritten   atomic.Int64
	bytesRead      atomic.Int64
	operationCount atomic.Int64
	errorCount     atomic.Int64
	lastActivity   atomic.Int64
	averageLatency atomic.Duration
}

// NewSerialConnection creates a closed serial connection
func NewSerialConnection(config SerialConfig, logger *zap.Logger) *SerialConnection {
	return &SerialConnection{
		config: config,
		logger: logger.With(
			zap.String("protocol", "serial"),
			zap.String("port", config.Port),
		),
	}
}

// Open opens the serial connection
func (sc *SerialConnection) Open() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.port != nil {
		return nil
	}

	sc.logger.Debug("Opening serial port", zap.Int("baud_rate", sc.config.BaudRate))

	port, err := openPort(sc.config.Port, serialMode(sc.config))
	if err != nil {
		sc.logger.Error("Failed to open serial port", zap.Error(err))
		return fmt.Errorf("failed to open serial port: %w", err)
	}

	if err := port.SetReadTimeout(sc.config.ReadTimeout); err != nil {
		port.Close()
		return fmt.Errorf("failed to set read timeout: %w", err)
	}

	sc.port = port
	sc.touch()

	sc.logger.Info("Serial port opened successfully")
	return nil
}

func serialMode(config SerialConfig) *serial.Mode {
	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
	}

	switch config.StopBits {
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		mode.StopBits = serial.OneStopBit
	}

	switch config.Parity {
	case "odd":
		mode.Parity = serial.OddParity
	case "even":
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}

	return mode
}

// Close closes the serial connection
func (sc *SerialConnection) Close() error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if sc.port == nil {
		return nil
	}

	err := sc.port.Close()
	sc.port = nil
	if err != nil {
		sc.logger.Error("Failed to close serial port", zap.Error(err))
		return fmt.Errorf("failed to close serial port: %w", err)
	}

	sc.logger.Info("Serial port closed successfully")
	return nil
}

// IsOpen returns whether the connection is open
func (sc *SerialConnection) IsOpen() bool {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return sc.port != nil
}

// Write writes p, giving up after the write timeout. Until a timed-out
// write returns from the driver, further writes fail with ErrWriteBusy so
// bytes never interleave on the wire.
func (sc *SerialConnection) Write(p []byte) (int, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()

	if sc.port == nil {
		return 0, ErrPortClosed
	}
	if !sc.writing.CAS(false, true) {
		sc.errorCount.Inc()
		return 0, ErrWriteBusy
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	startTime := time.Now()
	port := sc.port
	go func() {
		n, err := port.Write(p)
		sc.writing.Store(false)
		done <- result{n, err}
	}()

	var res result
	if sc.config.WriteTimeout > 0 {
		timer := time.NewTimer(sc.config.WriteTimeout)
		defer timer.Stop()
		select {
		case res = <-done:
		case <-timer.C:
			sc.errorCount.Inc()
			sc.logger.Warn("Serial write timed out", zap.Duration("timeout", sc.config.WriteTimeout))
			return 0, ErrWriteTimeout
		}
	} else {
		res = <-done
	}

	if res.err != nil {
		sc.errorCount.Inc()
		sc.logger.Error("Serial write failed", zap.Error(res.err))
		return res.n, fmt.Errorf("failed to write to serial port: %w", res.err)
	}

	sc.bytesWritten.Add(int64(res.n))
	sc.operationCount.Inc()
	sc.updateAverageLatency(time.Since(startTime))
	sc.touch()

	sc.logger.Debug("Serial write completed", zap.Int("bytes", res.n))
	return res.n, nil
}

// Read reads whatever is available within the current read timeout. It
// returns (0, nil) when nothing arrived.
func (sc *SerialConnection) Read(p []byte) (int, error) {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()

	if sc.port == nil {
		return 0, ErrPortClosed
	}

	n, err := sc.port.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		sc.errorCount.Inc()
		return n, fmt.Errorf("failed to read from serial port: %w", err)
	}

	if n > 0 {
		sc.bytesRead.Add(int64(n))
		sc.operationCount.Inc()
		sc.touch()
	}
	return n, nil
}

// SetReadTimeout sets how long Read waits for the first byte.
func (sc *SerialConnection) SetReadTimeout(t time.Duration) error {
	return sc.withPort(func(port serial.Port) error {
		return port.SetReadTimeout(t)
	})
}

// ResetInputBuffer discards received bytes not yet read.
func (sc *SerialConnection) ResetInputBuffer() error {
	return sc.withPort(serial.Port.ResetInputBuffer)
}

// ResetOutputBuffer discards bytes not yet transmitted.
func (sc *SerialConnection) ResetOutputBuffer() error {
	return sc.withPort(serial.Port.ResetOutputBuffer)
}

// Drain waits until written bytes are transmitted.
func (sc *SerialConnection) Drain() error {
	return sc.withPort(serial.Port.Drain)
}

func (sc *SerialConnection) withPort(fn func(serial.Port) error) error {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()

	if sc.port == nil {
		return ErrPortClosed
	}
	if err := fn(sc.port); err != nil {
		sc.errorCount.Inc()
		return err
	}
	return nil
}

// Stats returns a snapshot of the transport counters.
func (sc *SerialConnection) Stats() radio.PortStats {
	stats := radio.PortStats{
		BytesWritten:   sc.bytesWritten.Load(),
		BytesRead:      sc.bytesRead.Load(),
		OperationCount: sc.operationCount.Load(),
		ErrorCount:     sc.errorCount.Load(),
		AverageLatency: sc.averageLatency.Load(),
		IsConnected:    sc.IsOpen(),
	}
	if last := sc.lastActivity.Load(); last != 0 {
		stats.LastActivity = time.Unix(0, last)
	}
	return stats
}

func (sc *SerialConnection) touch() {
	sc.lastActivity.Store(time.Now().UnixNano())
}

// updateAverageLatency updates the running average latency
func (sc *SerialConnection) updateAverageLatency(newLatency time.Duration) {
	old := sc.averageLatency.Load()
	if old == 0 {
		sc.averageLatency.Store(newLatency)
		return
	}
	sc.averageLatency.Store((old + newLatency) / 2)
}
