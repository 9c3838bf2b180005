// internal/simulator/dialer.go
package simulator

import (
	"fmt"
	"strings"
	"sync"
)

// Dialer hands out simulated radios by port name. A name is bound to one
// Device for the Dialer's lifetime so settings survive reconnects.
type Dialer struct {
	opts    Options
	mu      sync.Mutex
	devices map[string]*Device
}

// NewDialer returns a Dialer whose devices use opts.
func NewDialer(opts Options) *Dialer {
	return &Dialer{
		opts:    opts,
		devices: make(map[string]*Device),
	}
}

// Handles reports whether name addresses the simulator.
func Handles(name string) bool {
	return strings.HasPrefix(name, Scheme)
}

// Open attaches to the device for name, creating it on first use.
func (d *Dialer) Open(name string, baudRate int) (*Device, error) {
	if !Handles(name) {
		return nil, fmt.Errorf("not a simulated port: %s", name)
	}
	if baudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate: %d", baudRate)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	device, ok := d.devices[name]
	if !ok {
		device = NewDevice(d.opts)
		d.devices[name] = device
		return device, nil
	}
	if !device.Closed() {
		return nil, fmt.Errorf("simulated port %s is busy", name)
	}
	device.Open()
	return device, nil
}

// Device returns the device bound to name, if it was ever opened.
func (d *Dialer) Device(name string) (*Device, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	device, ok := d.devices[name]
	return device, ok
}
