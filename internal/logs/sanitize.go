// internal/logs/sanitize.go
package logs

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiEscapeRegex matches CSI sequences: ESC '[' parameter bytes, one final letter.
var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// Sanitize strips terminal escape sequences and the trailing line ending.
// Removal repeats until nothing matches, so removing one sequence can never
// leave another one behind.
func Sanitize(raw string) string {
	line := strings.TrimRight(raw, "\r\n")
	for ansiEscapeRegex.MatchString(line) {
		line = ansiEscapeRegex.ReplaceAllString(line, "")
	}
	return line
}

// SanitizeLines splits a batch of log text into sanitized lines, dropping
// lines that are blank after sanitization.
func SanitizeLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, r := range raw {
		line := Sanitize(r)
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// decode converts runtime bytes to text, replacing invalid UTF-8.
func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), "\uFFFD")
}
