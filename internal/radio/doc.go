// internal/radio/doc.go

// Package radio drives a SiK telemetry radio through its AT command
// interface.
//
// A Service owns at most one serial session. Connect opens the port and
// escapes into command mode with the "+++" guard-time sequence; every later
// exchange writes one CRLF-terminated command and collects response lines
// until a completion token (OK, ERROR, ERR) arrives or the command deadline
// passes. All exchanges on a Service are serialized.
package radio
