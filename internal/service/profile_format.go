// internal/service/profile_format.go
package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/BurntSushi/toml"

	"sik-configurator/internal/model"
	"sik-configurator/internal/radio"
)

// Profile file formats
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

const defaultExportName = "sik-radio-config"

// ErrUnsupportedFormat is returned for formats other than json and toml.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat normalizes a format query value. Empty means JSON.
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type used when serving format
func ContentType(format string) string {
	if format == FormatTOML {
		return "application/toml"
	}
	return "application/json"
}

type tomlProfile struct {
	ID         string            `toml:"id"`
	Name       string            `toml:"name"`
	CreatedAt  time.Time         `toml:"created_at"`
	UpdatedAt  time.Time         `toml:"updated_at"`
	Parameters map[string]string `toml:"parameters"`
}

// EncodeProfile serializes a profile as JSON or TOML
func EncodeProfile(format string, profile *model.Profile) ([]byte, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	if format == FormatJSON {
		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode profile: %w", err)
		}
		return data, nil
	}

	var buf bytes.Buffer
	doc := tomlProfile{
		ID:         profile.ID.String(),
		Name:       profile.Name,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
		Parameters: profile.Parameters,
	}
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeProfiles parses one profile or a list of profiles. JSON accepts an
// object or an array; TOML accepts a single document or [[profiles]]
// tables. Entries without usable parameters are skipped. ids and
// timestamps in the input are ignored.
func DecodeProfiles(format string, data []byte) ([]*model.Profile, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var entries []interface{}
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		var doc interface{}
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidProfile, err)
		}
		switch v := doc.(type) {
		case []interface{}:
			entries = v
		case map[string]interface{}:
			entries = []interface{}{v}
		default:
			return nil, fmt.Errorf("%w: expected an object or an array", ErrInvalidProfile)
		}
	case FormatTOML:
		var doc map[string]interface{}
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("%w: invalid TOML: %v", ErrInvalidProfile, err)
		}
		if list, ok := doc["profiles"].([]map[string]interface{}); ok {
			for _, item := range list {
				entries = append(entries, item)
			}
		} else {
			entries = []interface{}{doc}
		}
	}

	profiles := make([]*model.Profile, 0, len(entries))
	for _, entry := range entries {
		if profile, ok := normalizeProfile(entry); ok {
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}

func normalizeProfile(entry interface{}) (*model.Profile, bool) {
	fields, ok := entry.(map[string]interface{})
	if !ok {
		return nil, false
	}

	name, _ := fields["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultProfileName
	}

	parameters := model.ParameterSet{}
	switch raw := fields["parameters"].(type) {
	case []interface{}:
		for _, item := range raw {
			if pair, ok := item.(map[string]interface{}); ok {
				addPair(parameters, pair)
			}
		}
	case []map[string]interface{}:
		for _, pair := range raw {
			addPair(parameters, pair)
		}
	case map[string]interface{}:
		for code, value := range raw {
			addParameter(parameters, code, value)
		}
	}

	if len(parameters) == 0 {
		return nil, false
	}
	return &model.Profile{Name: name, Parameters: parameters}, true
}

func addPair(parameters model.ParameterSet, pair map[string]interface{}) {
	if code, ok := pair["code"].(string); ok {
		addParameter(parameters, code, pair["value"])
	}
}

// addParameter stores value under its canonical code. Codes that are not
// S<digits> are dropped.
func addParameter(parameters model.ParameterSet, code string, value interface{}) {
	n, err := radio.NormalizeIdentifier(code)
	if err != nil {
		return
	}
	parameters["S"+n] = stringValue(value)
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// ExportFileName derives a download name from the profile name.
func ExportFileName(name, format string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	base := b.String()
	if base == "" {
		base = defaultExportName
	}
	if format != FormatTOML {
		format = FormatJSON
	}
	return base + "." + format
}
