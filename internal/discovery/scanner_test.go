package discovery

import (
	"errors"
	"reflect"
	"testing"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"sik-configurator/internal/simulator"
)

func stubPorts(t *testing.T, details []*enumerator.PortDetails, err error) {
	t.Helper()
	original := listDetailed
	listDetailed = func() ([]*enumerator.PortDetails, error) {
		return details, err
	}
	t.Cleanup(func() { listDetailed = original })
}

func TestListPorts(t *testing.T) {
	stubPorts(t, []*enumerator.PortDetails{
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", SerialNumber: "A50285BI", Product: "FT232R USB UART"},
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "26ac", PID: "0011"},
	}, nil)

	ports, err := NewScanner(zap.NewNop(), false).ListPorts()
	if err != nil {
		t.Fatalf("ListPorts: %v", err)
	}

	want := []PortInfo{
		{Device: "/dev/ttyACM0", Description: "n/a", HWID: "USB VID:PID=26AC:0011"},
		{Device: "/dev/ttyS0", Description: "n/a", HWID: "n/a"},
		{Device: "/dev/ttyUSB0", Description: "FT232R USB UART", HWID: "USB VID:PID=0403:6001 SER=A50285BI"},
	}
	if !reflect.DeepEqual(ports, want) {
		t.Errorf("ListPorts mismatch\n got: %+v\nwant: %+v", ports, want)
	}
}

func TestListPortsWithSimulator(t *testing.T) {
	stubPorts(t, nil, nil)

	ports, err := NewScanner(zap.NewNop(), true).ListPorts()
	if err != nil {
		t.Fatalf("ListPorts: %v", err)
	}
	if len(ports) != 1 || ports[0].Device != simulator.DefaultPortName {
		t.Errorf("expected only the simulated radio, got %+v", ports)
	}
}

func TestListPortsEmpty(t *testing.T) {
	stubPorts(t, nil, nil)

	ports, err := NewScanner(zap.NewNop(), false).ListPorts()
	if err != nil {
		t.Fatalf("ListPorts: %v", err)
	}
	if ports == nil || len(ports) != 0 {
		t.Errorf("expected an empty list, got %#v", ports)
	}
}

func TestListPortsFailure(t *testing.T) {
	cause := errors.New("udev unavailable")
	stubPorts(t, nil, cause)

	if _, err := NewScanner(zap.NewNop(), false).ListPorts(); !errors.Is(err, cause) {
		t.Errorf("expected wrapped enumeration error, got: %v", err)
	}
}
