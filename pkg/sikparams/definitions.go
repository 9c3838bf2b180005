// pkg/sikparams/definitions.go

// Package sikparams describes the configuration registers exposed by SiK
// telemetry radio firmware and renders their values for display.
package sikparams

import (
	"sort"
	"strconv"
	"strings"
)

// ValueType is the kind of value a register holds.
type ValueType string

const (
	ValueTypeInt  ValueType = "int"
	ValueTypeEnum ValueType = "enum"
	ValueTypeBool ValueType = "bool"
)

// Choice is one allowed value of an enum register.
type Choice struct {
	Value string `json:"value" toml:"value"`
	Label string `json:"label" toml:"label"`
}

// Definition is the metadata for a single register.
type Definition struct {
	Name        string            `json:"name" toml:"name"`
	Description string            `json:"description" toml:"description"`
	ValueType   ValueType         `json:"value_type" toml:"value_type"`
	Min         *int              `json:"min,omitempty" toml:"min,omitempty"`
	Max         *int              `json:"max,omitempty" toml:"max,omitempty"`
	Unit        string            `json:"unit,omitempty" toml:"unit,omitempty"`
	Choices     []Choice          `json:"choices,omitempty" toml:"choices,omitempty"`
	Aliases     map[string]string `json:"aliases,omitempty" toml:"aliases,omitempty"`

	// ReadOnly registers answer ERROR to ATSn=.
	ReadOnly bool `json:"read_only,omitempty" toml:"read_only,omitempty"`
}

// Catalog maps register codes ("S0", "S1", ...) to their definitions.
type Catalog struct {
	definitions map[string]Definition
}

// NewCatalog builds a catalog from the given definitions. Codes are
// upper-cased.
func NewCatalog(definitions map[string]Definition) *Catalog {
	defs := make(map[string]Definition, len(definitions))
	for code, def := range definitions {
		defs[strings.ToUpper(strings.TrimSpace(code))] = def
	}
	return &Catalog{definitions: defs}
}

var defaultCatalog = NewCatalog(sikDefinitions())

// Default returns the catalog for stock SiK firmware.
func Default() *Catalog {
	return defaultCatalog
}

// Lookup returns the definition registered for code.
func (c *Catalog) Lookup(code string) (Definition, bool) {
	def, ok := c.definitions[strings.ToUpper(strings.TrimSpace(code))]
	return def, ok
}

// ReadOnly reports whether the firmware refuses writes to code. Unknown
// codes are writable.
func (c *Catalog) ReadOnly(code string) bool {
	def, ok := c.Lookup(code)
	return ok && def.ReadOnly
}

// All returns a copy of every definition keyed by code.
func (c *Catalog) All() map[string]Definition {
	out := make(map[string]Definition, len(c.definitions))
	for code, def := range c.definitions {
		out[code] = def
	}
	return out
}

// Codes returns the registered codes in register order.
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.definitions))
	for code := range c.definitions {
		codes = append(codes, code)
	}
	SortCodes(codes)
	return codes
}

// SortCodes orders register codes by their numeric index. Codes without a
// numeric index sort last, alphabetically.
func SortCodes(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool {
		ni, okI := codeIndex(codes[i])
		nj, okJ := codeIndex(codes[j])
		switch {
		case okI && okJ:
			return ni < nj
		case okI != okJ:
			return okI
		default:
			return codes[i] < codes[j]
		}
	})
}

func codeIndex(code string) (int, bool) {
	digits := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(code)), "S")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func intPtr(v int) *int {
	return &v
}

func sikDefinitions() map[string]Definition {
	return map[string]Definition{
		"S0": {
			Name:        "FORMAT",
			Description: "EEPROM format version (read only)",
			ValueType:   ValueTypeInt,
			Min:         intPtr(0),
			Max:         intPtr(255),
			Aliases:     map[string]string{"25": "AT Command Mode"},
			ReadOnly:    true,
		},
		"S1": {
			Name:        "SERIAL_SPEED",
			Description: "Serial port baud rate in one-byte form",
			ValueType:   ValueTypeEnum,
			Choices: []Choice{
				{Value: "1", Label: "1200 bps"},
				{Value: "2", Label: "2400 bps"},
				{Value: "4", Label: "4800 bps"},
				{Value: "9", Label: "9600 bps"},
				{Value: "19", Label: "19200 bps"},
				{Value: "38", Label: "38400 bps"},
				{Value: "57", Label: "57600 bps"},
				{Value: "115", Label: "115200 bps"},
				{Value: "230", Label: "230400 bps"},
			},
		},
		"S2": {
			Name:        "AIR_SPEED",
			Description: "Over-the-air data rate in kbps",
			ValueType:   ValueTypeEnum,
			Choices: []Choice{
				{Value: "2", Label: "2 kbps"},
				{Value: "4", Label: "4 kbps"},
				{Value: "8", Label: "8 kbps"},
				{Value: "16", Label: "16 kbps"},
				{Value: "19", Label: "19 kbps"},
				{Value: "24", Label: "24 kbps"},
				{Value: "32", Label: "32 kbps"},
				{Value: "48", Label: "48 kbps"},
				{Value: "64", Label: "64 kbps"},
				{Value: "96", Label: "96 kbps"},
				{Value: "128", Label: "128 kbps"},
				{Value: "192", Label: "192 kbps"},
				{Value: "250", Label: "250 kbps"},
			},
		},
		"S3": {
			Name:        "NETID",
			Description: "Network ID (must match on both radios)",
			ValueType:   ValueTypeInt,
			Min:         intPtr(0),
			Max:         intPtr(499),
		},
		"S4": {
			Name:        "TXPOWER",
			Description: "Transmit power in dBm",
			ValueType:   ValueTypeInt,
			Min:         intPtr(0),
			Max:         intPtr(30),
			Unit:        "dBm",
		},
		"S5": {
			Name:        "ECC",
			Description: "Error correcting code",
			ValueType:   ValueTypeBool,
		},
		"S6": {
			Name:        "MAVLINK",
			Description: "MAVLink framing mode",
			ValueType:   ValueTypeBool,
		},
		"S7": {
			Name:        "OPPRESEND",
			Description: "Opportunistic resend of missed packets",
			ValueType:   ValueTypeBool,
		},
		"S8": {
			Name:        "MIN_FREQ",
			Description: "Minimum frequency in kHz",
			ValueType:   ValueTypeInt,
			Min:         intPtr(895000),
			Max:         intPtr(935000),
			Unit:        "kHz",
		},
		"S9": {
			Name:        "MAX_FREQ",
			Description: "Maximum frequency in kHz",
			ValueType:   ValueTypeInt,
			Min:         intPtr(895000),
			Max:         intPtr(935000),
			Unit:        "kHz",
		},
		"S10": {
			Name:        "NUM_CHANNELS",
			Description: "Number of frequency hopping channels",
			ValueType:   ValueTypeInt,
			Min:         intPtr(1),
			Max:         intPtr(50),
		},
		"S11": {
			Name:        "DUTY_CYCLE",
			Description: "Transmit duty cycle percentage",
			ValueType:   ValueTypeInt,
			Min:         intPtr(10),
			Max:         intPtr(100),
			Unit:        "%",
		},
		"S12": {
			Name:        "LBT_RSSI",
			Description: "Listen-before-talk RSSI threshold (0 disables)",
			ValueType:   ValueTypeInt,
			Min:         intPtr(0),
			Max:         intPtr(255),
			Aliases:     map[string]string{"0": "Disabled"},
		},
		"S13": {
			Name:        "MANCHESTER",
			Description: "Manchester encoding",
			ValueType:   ValueTypeBool,
		},
		"S14": {
			Name:        "RTSCTS",
			Description: "Hardware flow control (RTS/CTS)",
			ValueType:   ValueTypeBool,
		},
		"S15": {
			Name:        "MAX_WINDOW",
			Description: "Maximum transmit window in milliseconds",
			ValueType:   ValueTypeInt,
			Min:         intPtr(20),
			Max:         intPtr(400),
			Unit:        "ms",
		},
	}
}
