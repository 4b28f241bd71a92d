// internal/logs/fetcher.go
package logs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kaspa-ng/status-api/internal/models"
)

// Fetcher reads bounded log snapshots. Failures are returned once and never
// retried.
type Fetcher struct {
	runtime    Runtime
	timestamps bool
}

// NewFetcher creates a snapshot fetcher. When timestamps is set, each line is
// prefixed with the runtime's arrival timestamp.
func NewFetcher(runtime Runtime, timestamps bool) *Fetcher {
	return &Fetcher{runtime: runtime, timestamps: timestamps}
}

// Tail returns up to tail of the most recent sanitized, non-empty lines.
func (f *Fetcher) Tail(ctx context.Context, h Handle, tail int) ([]string, error) {
	rc, err := f.runtime.Logs(ctx, h.ID, LogOptions{Tail: tail, Timestamps: f.timestamps})
	if err != nil {
		return nil, fmt.Errorf("%w: container '%s': %w", ErrFetch, h.Name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading container '%s': %w", ErrFetch, h.Name, err)
	}

	lines := SanitizeLines(decode(data))
	log.Debug("Fetched log snapshot", "service", h.Service, "container", h.Name, "tail", tail, "lines", len(lines))
	return lines, nil
}

// Text returns the snapshot joined into one text blob.
func (f *Fetcher) Text(ctx context.Context, h Handle, tail int) (string, error) {
	lines, err := f.Tail(ctx, h, tail)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Parsed returns the snapshot as structured lines tagged with source.
func (f *Fetcher) Parsed(ctx context.Context, h Handle, tail int, source string) ([]models.LogLine, error) {
	lines, err := f.Tail(ctx, h, tail)
	if err != nil {
		return nil, err
	}
	parsed := make([]models.LogLine, 0, len(lines))
	for _, line := range lines {
		parsed = append(parsed, Parse(strings.TrimSpace(line), source))
	}
	return parsed, nil
}
