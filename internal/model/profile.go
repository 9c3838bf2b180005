// internal/model/profile.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sik-configurator/pkg/sikparams"
)

// DefaultProfileName names imported profiles that carry no name.
const DefaultProfileName = "Saved Configuration"

// ParameterSet maps register codes ("S3") to values, stored as JSONB.
type ParameterSet map[string]string

// Scan implements sql.Scanner.
func (p *ParameterSet) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ParameterSet", value)
	}
	return json.Unmarshal(data, p)
}

// Value implements driver.Valuer.
func (p ParameterSet) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// Codes returns the codes in register order.
func (p ParameterSet) Codes() []string {
	codes := make([]string, 0, len(p))
	for code := range p {
		codes = append(codes, code)
	}
	sikparams.SortCodes(codes)
	return codes
}

// Profile is a named set of register values that can be applied to a radio.
type Profile struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	Name       string       `json:"name" db:"name"`
	Parameters ParameterSet `json:"parameters" db:"parameters"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" db:"updated_at"`
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	out := *p
	if p.Parameters != nil {
		out.Parameters = make(ParameterSet, len(p.Parameters))
		for code, value := range p.Parameters {
			out.Parameters[code] = value
		}
	}
	return &out
}
