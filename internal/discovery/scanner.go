// internal/discovery/scanner.go
package discovery

import (
	"fmt"
	"sort"
	"strings"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"sik-configurator/internal/simulator"
)

// PortInfo describes a serial port a radio may be attached to.
type PortInfo struct {
	Device      string `json:"device"`
	Description string `json:"description"`
	HWID        string `json:"hwid"`
}

// listDetailed is replaced in tests.
var listDetailed = enumerator.GetDetailedPortsList

// Scanner enumerates serial ports.
type Scanner struct {
	logger   *zap.Logger
	simulate bool
}

// NewScanner creates a scanner. With simulate set the simulated radio is
// listed after the physical ports.
func NewScanner(logger *zap.Logger, simulate bool) *Scanner {
	return &Scanner{
		logger:   logger.With(zap.String("scanner", "serial")),
		simulate: simulate,
	}
}

// ListPorts returns the ports currently present on the host.
func (s *Scanner) ListPorts() ([]PortInfo, error) {
	details, err := listDetailed()
	if err != nil {
		s.logger.Error("Failed to enumerate serial ports", zap.Error(err))
		return nil, fmt.Errorf("failed to get serial ports: %w", err)
	}

	ports := make([]PortInfo, 0, len(details)+1)
	for _, d := range details {
		ports = append(ports, describePort(d))
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Device < ports[j].Device
	})

	if s.simulate {
		ports = append(ports, PortInfo{
			Device:      simulator.DefaultPortName,
			Description: "Simulated SiK radio",
			HWID:        "n/a",
		})
	}

	s.logger.Debug("Serial ports enumerated", zap.Int("count", len(ports)))
	return ports, nil
}

func describePort(d *enumerator.PortDetails) PortInfo {
	info := PortInfo{
		Device:      d.Name,
		Description: "n/a",
		HWID:        "n/a",
	}
	if !d.IsUSB {
		return info
	}

	if d.Product != "" {
		info.Description = d.Product
	}
	hwid := fmt.Sprintf("USB VID:PID=%s:%s", strings.ToUpper(d.VID), strings.ToUpper(d.PID))
	if d.SerialNumber != "" {
		hwid += " SER=" + d.SerialNumber
	}
	info.HWID = hwid
	return info
}
