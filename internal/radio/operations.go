// internal/radio/operations.go
package radio

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
)

// DeviceInfo is the identification output of ATI, ATI2, ATI3 and ATI4 with
// completion tokens removed.
type DeviceInfo struct {
	Firmware         []string `json:"firmware"`
	Hardware         []string `json:"hardware"`
	Registers        []string `json:"registers"`
	BoardFrequencies []string `json:"board_frequencies"`
}

// Execute sends one command and returns the collected response lines.
// With sanitize set, unread input is discarded before writing.
func (s *Service) Execute(command string, sanitize bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeLocked(command, sanitize)
}

func (s *Service) executeLocked(command string, sanitize bool) ([]string, error) {
	conn := s.conn
	if conn == nil {
		return nil, newError(ErrNotConnected, nil, "no radio is currently connected")
	}

	startTime := time.Now()
	lines, err := exchange(conn.reader, command, sanitize)
	duration := time.Since(startTime)

	event := Event{
		Type:      EventCommand,
		SessionID: conn.sessionID,
		Port:      conn.portName,
		Command:   strings.TrimSpace(command),
		Response:  lines,
		Duration:  duration,
	}
	if err != nil {
		event.ErrorCode = Code(err)
		event.Error = err.Error()
		s.logger.Warn("Radio command failed",
			zap.String("command", event.Command),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	} else if ce := s.logger.Check(zap.DebugLevel, "Radio command completed"); ce != nil {
		ce.Write(
			zap.String("command", event.Command),
			zap.Strings("response", lines),
			zap.Duration("duration", duration),
		)
	}
	s.emit(event)

	return lines, err
}

// GetDeviceInfo reads the identification banners under a single lock hold.
func (s *Service) GetDeviceInfo() (*DeviceInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := &DeviceInfo{}
	targets := []struct {
		command string
		dest    *[]string
	}{
		{"ATI", &info.Firmware},
		{"ATI2", &info.Hardware},
		{"ATI3", &info.Registers},
		{"ATI4", &info.BoardFrequencies},
	}
	for _, target := range targets {
		lines, err := s.executeLocked(target.command, true)
		if err != nil {
			return nil, err
		}
		*target.dest = withoutStopTokens(lines)
	}
	return info, nil
}

// GetParameters reads the full register table with ATI5.
func (s *Service) GetParameters() ([]ParameterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.executeLocked("ATI5", true)
	if err != nil {
		return nil, err
	}

	entries := ParseParameterTable(lines)
	for i := range entries {
		describe(&entries[i], s.catalog)
	}
	return entries, nil
}

// QueryParameter reads a single register with ATSn?.
func (s *Service) QueryParameter(identifier string) (*ParameterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryParameterLocked(identifier)
}

func (s *Service) queryParameterLocked(identifier string) (*ParameterEntry, error) {
	n, err := NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	lines, err := s.executeLocked(fmt.Sprintf("ATS%s?", n), true)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if line == "" || IsStopToken(line, DefaultStopTokens) {
			continue
		}
		_, payload, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		raw := strings.TrimSpace(payload)
		entry := &ParameterEntry{
			Code:  "S" + n,
			Value: ExtractValueToken(raw),
			Raw:   raw,
		}
		describe(entry, s.catalog)
		return entry, nil
	}

	return nil, newError(ErrReadFailure, nil, "failed to read parameter S%s", n)
}

// SetParameter writes a register with ATSn=value and returns the value read
// back from the radio. Values carrying control characters are refused
// before anything is sent. Nothing is read back when the write is rejected.
func (s *Service) SetParameter(identifier, value string) (*ParameterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if strings.ContainsFunc(value, unicode.IsControl) {
		return nil, newError(ErrInvalidParameter, nil, "value for S%s must not contain control characters", n)
	}

	lines, err := s.executeLocked(fmt.Sprintf("ATS%s=%s", n, value), true)
	if err != nil {
		return nil, err
	}
	if !didSucceed(lines) {
		return nil, newError(ErrWriteRejected, nil, "radio rejected the update of S%s", n)
	}

	entry, err := s.queryParameterLocked(n)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Radio parameter updated",
		zap.String("code", entry.Code),
		zap.String("value", entry.Value),
	)
	s.emit(Event{
		Type:      EventParameterUpdated,
		SessionID: s.conn.sessionID,
		Port:      s.conn.portName,
		Parameter: entry,
	})
	return entry, nil
}

// SaveParameters persists the active registers to flash with AT&W.
func (s *Service) SaveParameters() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.executeLocked("AT&W", true)
	if err != nil {
		return err
	}
	if !didSucceed(lines) {
		return newError(ErrPersistFailure, nil, "failed to write parameters to flash")
	}
	s.logger.Info("Radio parameters saved to flash")
	return nil
}

// Reboot restarts the radio with ATZ. An acknowledged reboot always ends
// the session.
func (s *Service) Reboot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.executeLocked("ATZ", true)
	if err != nil {
		return err
	}
	if !didSucceed(lines) {
		return newError(ErrRebootFailure, nil, "radio did not acknowledge reboot")
	}

	sessionID, port := s.conn.sessionID, s.conn.portName
	s.disconnectLocked("reboot")
	s.emit(Event{
		Type:      EventRebooted,
		SessionID: sessionID,
		Port:      port,
	})
	return nil
}

// SendRawCommand sends text as-is without discarding pending input and
// returns every response line, completion token included.
func (s *Service) SendRawCommand(command string) ([]string, error) {
	return s.Execute(command, false)
}
