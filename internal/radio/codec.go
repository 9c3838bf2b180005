// internal/radio/codec.go
package radio

import "strings"

const (
	// CRLF terminates every command line.
	CRLF = "\r\n"
	// EscapeSequence requests command mode. It is sent without a terminator.
	EscapeSequence = "+++"

	OK    = "OK"
	ERROR = "ERROR"
	ERR   = "ERR"
)

// DefaultStopTokens end a command response.
var DefaultStopTokens = []string{OK, ERROR, ERR}

var negotiationStopTokens = []string{OK}

// IsStopToken reports whether line equals one of tokens exactly.
func IsStopToken(line string, tokens []string) bool {
	for _, token := range tokens {
		if line == token {
			return true
		}
	}
	return false
}

// NormalizeIdentifier turns "S3", "s3", " 3 " into "3".
func NormalizeIdentifier(input string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.TrimPrefix(normalized, "S")
	if normalized == "" {
		return "", newError(ErrInvalidParameter, nil, "invalid parameter identifier: %q", input)
	}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] < '0' || normalized[i] > '9' {
			return "", newError(ErrInvalidParameter, nil, "invalid parameter identifier: %q", input)
		}
	}
	return normalized, nil
}

// ExtractValueToken returns the part after the first "=" of a register
// payload such as "NETID=25", or the whole trimmed payload.
func ExtractValueToken(raw string) string {
	token := strings.TrimSpace(raw)
	if _, value, found := strings.Cut(token, "="); found {
		return strings.TrimSpace(value)
	}
	return token
}

func didSucceed(lines []string) bool {
	for _, line := range lines {
		if line == OK {
			return true
		}
	}
	return false
}

func withoutStopTokens(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !IsStopToken(line, DefaultStopTokens) {
			out = append(out, line)
		}
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
