// internal/logs/parser.go
package logs

import (
	"strings"

	"github.com/kaspa-ng/status-api/internal/models"
)

// Placeholder fills fields the parser could not derive.
const Placeholder = "--"

// Result is the outcome of matching one line: Parsed or Fallback.
type Result interface {
	LogLine(source string) models.LogLine
}

// Parsed is a line of the form "prefix [level] message".
type Parsed struct {
	Timestamp string
	Level     string
	Message   string
}

// LogLine implements Result.
func (p Parsed) LogLine(source string) models.LogLine {
	return models.LogLine{
		Timestamp: orPlaceholder(p.Timestamp),
		Level:     orPlaceholder(p.Level),
		Message:   p.Message,
		Source:    orPlaceholder(source),
	}
}

// Fallback is a line without bracket structure. An empty Message yields an
// all-placeholder record.
type Fallback struct {
	Message string
}

// LogLine implements Result.
func (f Fallback) LogLine(source string) models.LogLine {
	if f.Message == "" {
		source = ""
	}
	return models.LogLine{
		Timestamp: Placeholder,
		Level:     Placeholder,
		Message:   f.Message,
		Source:    orPlaceholder(source),
	}
}

// Match splits a sanitized line on its first bracket pair.
func Match(line string) Result {
	open := strings.IndexByte(line, '[')
	if open < 0 {
		return Fallback{Message: line}
	}
	closing := strings.IndexByte(line[open+1:], ']')
	if closing < 0 {
		return Fallback{Message: line}
	}
	closing += open + 1

	return Parsed{
		Timestamp: strings.TrimSpace(line[:open]),
		Level:     strings.TrimSpace(line[open+1 : closing]),
		Message:   strings.TrimSpace(line[closing+1:]),
	}
}

// Parse converts a sanitized line into a LogLine tagged with source.
// It never rejects input.
func Parse(line, source string) models.LogLine {
	return Match(line).LogLine(source)
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
