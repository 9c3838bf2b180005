// internal/radio/service.go
package radio

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sik-configurator/pkg/sikparams"
)

// Options configures a Service. Zero values fall back to SiK defaults.
type Options struct {
	Timing          Timing
	DefaultBaudRate int
	// ExitCommand is written best-effort on Disconnect. Empty uses
	// DefaultExitCommand.
	ExitCommand string
	Catalog     *sikparams.Catalog
	Events      EventSink
	Logger      *zap.Logger
}

// Status is a snapshot of the session. Pointer fields are nil while
// disconnected.
type Status struct {
	Connected   bool       `json:"connected"`
	Port        *string    `json:"port"`
	BaudRate    *int       `json:"baudrate"`
	ConnectedAt *time.Time `json:"connected_at"`
	SessionID   *string    `json:"session_id,omitempty"`
}

type connection struct {
	port        Port
	reader      *lineReader
	portName    string
	baudRate    int
	connectedAt time.Time
	sessionID   string
}

// Service owns the single radio session of the process.
//
// mu serializes every exchange, including the multi-command sequences of
// GetDeviceInfo and SetParameter. Methods with a Locked suffix expect it
// held. statusMu guards only the published snapshot fields and is never
// held across I/O.
type Service struct {
	dialer          Dialer
	timing          Timing
	defaultBaudRate int
	exitCommand     string
	catalog         *sikparams.Catalog
	events          EventSink
	logger          *zap.Logger

	mu   sync.Mutex
	conn *connection

	statusMu  sync.RWMutex
	status    Status
	transport StatsReporter
}

// NewService creates a disconnected Service that opens ports with dialer.
func NewService(dialer Dialer, opts Options) *Service {
	s := &Service{
		dialer:          dialer,
		timing:          opts.Timing.withDefaults(),
		defaultBaudRate: opts.DefaultBaudRate,
		exitCommand:     opts.ExitCommand,
		catalog:         opts.Catalog,
		events:          opts.Events,
		logger:          opts.Logger,
	}
	if s.defaultBaudRate <= 0 {
		s.defaultBaudRate = DefaultBaudRate
	}
	if s.exitCommand == "" {
		s.exitCommand = DefaultExitCommand
	}
	if s.catalog == nil {
		s.catalog = sikparams.Default()
	}
	if s.events == nil {
		s.events = discardSink{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("component", "radio"))
	return s
}

// Catalog returns the parameter catalog used to describe registers.
func (s *Service) Catalog() *sikparams.Catalog {
	return s.catalog
}

// Connect opens port and enters command mode. A baudRate of zero uses the
// configured default. Connecting again with the same port and baud rate
// returns the current status.
func (s *Service) Connect(port string, baudRate int) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connectLocked(port, baudRate)
}

func (s *Service) connectLocked(port string, baudRate int) (Status, error) {
	if baudRate <= 0 {
		baudRate = s.defaultBaudRate
	}

	if s.conn != nil {
		if s.conn.portName == port && s.conn.baudRate == baudRate {
			return s.Status(), nil
		}
		return Status{}, newError(ErrAlreadyConnected, nil,
			"already connected to %s, disconnect before connecting elsewhere", s.conn.portName)
	}

	log := s.logger.With(zap.String("port", port), zap.Int("baud_rate", baudRate))
	log.Info("Opening radio connection")

	p, err := s.dialer.Dial(port, baudRate)
	if err != nil {
		log.Error("Failed to open serial port", zap.Error(err))
		return Status{}, newError(ErrPortUnavailable, err, "unable to open serial port %s", port)
	}

	startTime := time.Now()
	reader := newLineReader(p, s.timing)
	if err := negotiate(reader); err != nil {
		if closeErr := p.Close(); closeErr != nil {
			log.Warn("Failed to close port after negotiation failure", zap.Error(closeErr))
		}
		log.Error("Command mode negotiation failed", zap.Error(err), zap.Duration("duration", time.Since(startTime)))
		return Status{}, err
	}

	s.conn = &connection{
		port:        p,
		reader:      reader,
		portName:    port,
		baudRate:    baudRate,
		connectedAt: time.Now(),
		sessionID:   uuid.New().String(),
	}
	s.publishStatus()

	log.Info("Radio connected",
		zap.String("session_id", s.conn.sessionID),
		zap.Duration("duration", time.Since(startTime)),
	)
	s.emit(Event{
		Type:      EventConnected,
		SessionID: s.conn.sessionID,
		Port:      port,
		BaudRate:  baudRate,
		Duration:  time.Since(startTime),
	})
	return s.Status(), nil
}

// Disconnect leaves command mode best-effort and closes the port. It never
// fails and is a no-op when nothing is connected.
func (s *Service) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disconnectLocked("requested")
}

func (s *Service) disconnectLocked(reason string) {
	conn := s.conn
	if conn == nil {
		return
	}

	log := s.logger.With(zap.String("port", conn.portName), zap.String("session_id", conn.sessionID))

	if err := writeAll(conn.port, []byte(s.exitCommand+CRLF)); err != nil {
		log.Debug("Exit command not delivered", zap.Error(err))
	}
	if err := conn.port.Close(); err != nil {
		log.Warn("Failed to close serial port", zap.Error(err))
	}

	s.conn = nil
	s.publishStatus()

	log.Info("Radio disconnected", zap.String("reason", reason))
	s.emit(Event{
		Type:      EventDisconnected,
		SessionID: conn.sessionID,
		Port:      conn.portName,
		Reason:    reason,
	})
}

// Status returns the last published session snapshot without touching the
// port.
func (s *Service) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// publishStatus copies the session fields into the snapshot. Called with
// mu held.
func (s *Service) publishStatus() {
	var status Status
	var transport StatsReporter
	if conn := s.conn; conn != nil {
		transport, _ = conn.port.(StatsReporter)
		port := conn.portName
		baud := conn.baudRate
		at := conn.connectedAt
		session := conn.sessionID
		status = Status{
			Connected:   true,
			Port:        &port,
			BaudRate:    &baud,
			ConnectedAt: &at,
			SessionID:   &session,
		}
	}

	s.statusMu.Lock()
	s.status = status
	s.transport = transport
	s.statusMu.Unlock()
}

// PortStats returns the transport counters of the open port. ok is false
// while disconnected or when the port keeps no counters.
func (s *Service) PortStats() (stats PortStats, ok bool) {
	s.statusMu.RLock()
	transport := s.transport
	s.statusMu.RUnlock()

	if transport == nil {
		return PortStats{}, false
	}
	return transport.Stats(), true
}

func (s *Service) emit(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events.RadioEvent(event)
}
