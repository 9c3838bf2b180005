// pkg/sikparams/render.go
package sikparams

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidValue is returned by Validate when a value is outside what the
// register accepts.
var ErrInvalidValue = errors.New("invalid parameter value")

var kiloToMega = decimal.NewFromInt(1000)

// Render returns the human readable form of value for the register code.
//
// Aliases win over everything else, then enum labels, then bool
// Enabled/Disabled. Frequencies in kHz are shown in MHz, other units are
// appended. Unknown codes render the trimmed value.
func (c *Catalog) Render(code, value string) string {
	normalized := strings.TrimSpace(value)
	def, ok := c.Lookup(code)
	if !ok {
		return normalized
	}

	if alias, ok := def.Aliases[normalized]; ok {
		return alias
	}

	switch def.ValueType {
	case ValueTypeEnum:
		for _, choice := range def.Choices {
			if choice.Value == normalized && choice.Label != "" {
				return choice.Label
			}
		}
	case ValueTypeBool:
		switch normalized {
		case "1":
			return "Enabled"
		case "0":
			return "Disabled"
		}
	}

	if normalized == "" || def.Unit == "" {
		return normalized
	}

	if def.Unit == "kHz" {
		if khz, err := decimal.NewFromString(normalized); err == nil {
			return khz.Div(kiloToMega).StringFixed(3) + " MHz"
		}
	}

	if strings.HasSuffix(normalized, def.Unit) {
		return normalized
	}
	if def.Unit == "%" {
		return normalized + def.Unit
	}
	return normalized + " " + def.Unit
}

// Validate checks value against the register's type and range. Codes the
// catalog does not know accept any integer.
func (c *Catalog) Validate(code, value string) error {
	normalized := strings.TrimSpace(value)
	def, ok := c.Lookup(code)
	if !ok {
		if _, err := strconv.Atoi(normalized); err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", ErrInvalidValue, code, value)
		}
		return nil
	}

	switch def.ValueType {
	case ValueTypeBool:
		if normalized != "0" && normalized != "1" {
			return fmt.Errorf("%w: %s (%s) expects 0 or 1, got %q", ErrInvalidValue, code, def.Name, value)
		}
	case ValueTypeEnum:
		for _, choice := range def.Choices {
			if choice.Value == normalized {
				return nil
			}
		}
		return fmt.Errorf("%w: %s (%s) does not accept %q", ErrInvalidValue, code, def.Name, value)
	default:
		n, err := strconv.Atoi(normalized)
		if err != nil {
			return fmt.Errorf("%w: %s (%s) expects an integer, got %q", ErrInvalidValue, code, def.Name, value)
		}
		if def.Min != nil && n < *def.Min {
			return fmt.Errorf("%w: %s (%s) must be at least %d", ErrInvalidValue, code, def.Name, *def.Min)
		}
		if def.Max != nil && n > *def.Max {
			return fmt.Errorf("%w: %s (%s) must be at most %d", ErrInvalidValue, code, def.Name, *def.Max)
		}
	}
	return nil
}
