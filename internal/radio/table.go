// internal/radio/table.go
package radio

import (
	"strings"

	"sik-configurator/pkg/sikparams"
)

// ParameterEntry is one register as read from the radio.
type ParameterEntry struct {
	Code          string                `json:"code"`
	Value         string                `json:"value"`
	Raw           string                `json:"raw"`
	HumanReadable string                `json:"human_readable"`
	Definition    *sikparams.Definition `json:"definition,omitempty"`
}

// ParseParameterTable parses ATI5 output ("S3:NETID=25" per line). Lines
// without a colon are ignored. Order and duplicates are preserved.
func ParseParameterTable(lines []string) []ParameterEntry {
	entries := make([]ParameterEntry, 0, len(lines))
	for _, line := range lines {
		if line == "" || IsStopToken(line, DefaultStopTokens) {
			continue
		}
		codePart, valuePart, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		raw := strings.TrimSpace(valuePart)
		entries = append(entries, ParameterEntry{
			Code:  strings.ToUpper(strings.TrimSpace(codePart)),
			Value: ExtractValueToken(raw),
			Raw:   raw,
		})
	}
	return entries
}

// describe fills Definition and HumanReadable from the catalog.
func describe(entry *ParameterEntry, catalog *sikparams.Catalog) {
	if def, ok := catalog.Lookup(entry.Code); ok {
		entry.Definition = &def
	}
	entry.HumanReadable = catalog.Render(entry.Code, entry.Value)
}
