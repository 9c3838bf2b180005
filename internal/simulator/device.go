// internal/simulator/device.go

// Package simulator provides an in-memory SiK radio that speaks the AT
// command dialect over the same port interface as a serial device.
package simulator

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Scheme prefixes port names served by the simulator.
const Scheme = "sim://"

// DefaultPortName is the port the simulator advertises.
const DefaultPortName = Scheme + "radio"

// ErrClosed is returned by I/O on a closed Device.
var ErrClosed = errors.New("simulated port closed")

// Options change how the simulated firmware behaves.
type Options struct {
	// Silent never acknowledges "+++".
	Silent bool
	// RejectWrites answers every ATSn= with ERROR.
	RejectWrites bool
	// FailSave answers AT&W with ERROR.
	FailSave bool
	// FailReboot answers ATZ with ERROR.
	FailReboot bool
	// BareQuery answers ATSn? with the bare value instead of "Sn:NAME=value".
	BareQuery bool
	// Echo repeats every command line before its response.
	Echo bool
	// Firmware overrides the ATI banner.
	Firmware string
}

type register struct {
	name  string
	value int
}

// Device is a simulated radio. It is safe for concurrent use.
type Device struct {
	mu          sync.Mutex
	opts        Options
	registers   []register
	eeprom      []int
	commandMode bool
	closed      bool
	input       []byte
	output      []byte
	readTimeout time.Duration
	commands    []string
	ready       chan struct{}
}

// NewDevice returns a powered-on radio with factory registers.
func NewDevice(opts Options) *Device {
	d := &Device{
		opts:        opts,
		registers:   factoryRegisters(),
		readTimeout: time.Second,
		ready:       make(chan struct{}, 1),
	}
	d.eeprom = d.values()
	return d
}

// Open re-attaches the device after Close, as reopening the serial port
// would. The radio leaves command mode.
func (d *Device) Open() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = false
	d.commandMode = false
	d.input = nil
	d.output = nil
}

func factoryRegisters() []register {
	return []register{
		{"FORMAT", 25},
		{"SERIAL_SPEED", 57},
		{"AIR_SPEED", 64},
		{"NETID", 25},
		{"TXPOWER", 20},
		{"ECC", 1},
		{"MAVLINK", 1},
		{"OPPRESEND", 0},
		{"MIN_FREQ", 915000},
		{"MAX_FREQ", 928000},
		{"NUM_CHANNELS", 50},
		{"DUTY_CYCLE", 100},
		{"LBT_RSSI", 0},
		{"MANCHESTER", 0},
		{"RTSCTS", 0},
		{"MAX_WINDOW", 131},
	}
}

func (d *Device) values() []int {
	out := make([]int, len(d.registers))
	for i, r := range d.registers {
		out[i] = r.value
	}
	return out
}

// Read returns pending response bytes, waiting up to the read timeout.
// It returns (0, nil) when the timeout expires.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	deadline := time.Now().Add(d.readTimeout)
	d.mu.Unlock()

	for {
		d.mu.Lock()
		if d.closed {
			d.mu.Unlock()
			return 0, ErrClosed
		}
		if len(d.output) > 0 {
			n := copy(p, d.output)
			d.output = d.output[n:]
			d.mu.Unlock()
			return n, nil
		}
		d.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, nil
		}
		timer := time.NewTimer(remaining)
		select {
		case <-d.ready:
		case <-timer.C:
		}
		timer.Stop()
	}
}

// Write feeds bytes to the simulated firmware.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, ErrClosed
	}

	d.input = append(d.input, p...)
	if !d.commandMode {
		if bytes.Equal(d.input, []byte("+++")) {
			d.input = nil
			d.commands = append(d.commands, "+++")
			if !d.opts.Silent {
				d.commandMode = true
				d.respond("OK")
			}
			return len(p), nil
		}
		if !bytes.HasPrefix([]byte("+++"), d.input) {
			// Data mode traffic goes over the air.
			d.input = nil
		}
		return len(p), nil
	}

	for {
		i := bytes.IndexAny(d.input, "\r\n")
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(d.input[:i]))
		d.input = d.input[i+1:]
		if line == "" {
			continue
		}
		d.commands = append(d.commands, line)
		d.handle(line)
		if !d.commandMode {
			d.input = nil
			break
		}
	}
	return len(p), nil
}

// Close detaches the port.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// SetReadTimeout sets how long Read waits for data.
func (d *Device) SetReadTimeout(t time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readTimeout = t
	return nil
}

// ResetInputBuffer drops response bytes not yet read.
func (d *Device) ResetInputBuffer() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.output = nil
	return nil
}

// ResetOutputBuffer drops a partially written command.
func (d *Device) ResetOutputBuffer() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.input = nil
	return nil
}

// Drain is a no-op; writes are processed synchronously.
func (d *Device) Drain() error {
	return nil
}

// Commands returns every command line received, "+++" included.
func (d *Device) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.commands))
	copy(out, d.commands)
	return out
}

// Closed reports whether the port is detached.
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// InCommandMode reports whether the firmware is accepting AT commands.
func (d *Device) InCommandMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commandMode
}

// Register returns the active value of register n.
func (d *Device) Register(n int) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < 0 || n >= len(d.registers) {
		return 0, false
	}
	return d.registers[n].value, true
}

// Inject queues raw bytes as if the radio had sent them unprompted.
func (d *Device) Inject(data string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.output = append(d.output, data...)
	d.signal()
}

func (d *Device) respond(lines ...string) {
	for _, line := range lines {
		d.output = append(d.output, line...)
		d.output = append(d.output, '\r', '\n')
	}
	d.signal()
}

func (d *Device) signal() {
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

func (d *Device) handle(line string) {
	if d.opts.Echo {
		d.respond(line)
	}

	command := strings.ToUpper(line)
	switch command {
	case "AT":
		d.respond("OK")
	case "ATI":
		firmware := d.opts.Firmware
		if firmware == "" {
			firmware = "SiK 2.2 on HM-TRP"
		}
		d.respond(firmware, "OK")
	case "ATI2":
		d.respond("HopeRF HM-TRP", "Si1000 Rev B", "OK")
	case "ATI3":
		lines := make([]string, 0, len(d.registers)+1)
		for i, r := range d.registers {
			lines = append(lines, fmt.Sprintf("S%d:%s", i, r.name))
		}
		d.respond(append(lines, "OK")...)
	case "ATI4":
		d.respond(
			fmt.Sprintf("%d to %d kHz", d.registers[8].value, d.registers[9].value),
			fmt.Sprintf("Num channels: %d", d.registers[10].value),
			"OK",
		)
	case "ATI5":
		lines := make([]string, 0, len(d.registers)+1)
		for i, r := range d.registers {
			lines = append(lines, fmt.Sprintf("S%d:%s=%d", i, r.name, r.value))
		}
		d.respond(append(lines, "OK")...)
	case "ATI6":
		d.respond("Vcc: 3.3V", "Temp: 28C", "OK")
	case "ATI7":
		d.respond("EEPROM: 0x1234ABCD", "Flash: 0xDEADBEEF", "OK")
	case "ATI9":
		d.respond("Bootloader: 1.1", "OK")
	case "AT&V":
		lines := make([]string, 0, len(d.registers)+1)
		for _, r := range d.registers {
			lines = append(lines, fmt.Sprintf("%s=%d", r.name, r.value))
		}
		d.respond(append(lines, "OK")...)
	case "AT&W":
		if d.opts.FailSave {
			d.respond("ERROR")
			return
		}
		d.eeprom = d.values()
		d.respond("OK")
	case "AT&F":
		d.registers = factoryRegisters()
		d.respond("OK")
	case "ATZ":
		if d.opts.FailReboot {
			d.respond("ERROR")
			return
		}
		d.respond("OK")
		for i := range d.registers {
			d.registers[i].value = d.eeprom[i]
		}
		d.commandMode = false
	case "ATO":
		d.respond("OK")
		d.commandMode = false
	default:
		d.handleRegister(command)
	}
}

func (d *Device) handleRegister(command string) {
	if !strings.HasPrefix(command, "ATS") {
		d.respond("ERROR")
		return
	}
	body := command[len("ATS"):]

	if index, ok := strings.CutSuffix(body, "?"); ok {
		n, err := strconv.Atoi(index)
		if err != nil || n < 0 || n >= len(d.registers) {
			d.respond("ERROR")
			return
		}
		r := d.registers[n]
		if d.opts.BareQuery {
			d.respond(strconv.Itoa(r.value))
			return
		}
		d.respond(fmt.Sprintf("S%d:%s=%d", n, r.name, r.value))
		return
	}

	index, value, found := strings.Cut(body, "=")
	if !found || d.opts.RejectWrites {
		d.respond("ERROR")
		return
	}
	n, err := strconv.Atoi(index)
	if err != nil || n <= 0 || n >= len(d.registers) {
		// S0 is the read-only format version.
		d.respond("ERROR")
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v < 0 {
		d.respond("ERROR")
		return
	}
	d.registers[n].value = v
	d.respond("OK")
}
