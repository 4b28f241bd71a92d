// internal/node/status.go
package node

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/models"
)

const (
	statusLogTail  = 12
	appDir         = "/app/data"
	utxoIndexFlag  = "--utxoindex"
	unknownDefault = "unknown"
)

// ErrStatus wraps any failure while building a node status report.
var ErrStatus = errors.New("unable to collect node status")

// ContainerInfo is the subset of inspected container attributes in a report.
type ContainerInfo struct {
	ID        string
	Name      string
	Status    string
	Image     string
	StartedAt string
	Cmd       []string
}

// Inspector reads container attributes from the runtime.
type Inspector interface {
	Inspect(ctx context.Context, id string) (ContainerInfo, error)
}

// Reporter builds status reports for the node container.
type Reporter struct {
	resolver  *logs.Resolver
	fetcher   *logs.Fetcher
	inspector Inspector
	service   string
	now       func() time.Time
}

// NewReporter creates a reporter for the given node service key.
func NewReporter(resolver *logs.Resolver, fetcher *logs.Fetcher, inspector Inspector, service string) *Reporter {
	return &Reporter{
		resolver:  resolver,
		fetcher:   fetcher,
		inspector: inspector,
		service:   service,
		now:       time.Now,
	}
}

// Status resolves the node container and reports its state with a parsed
// log tail.
func (r *Reporter) Status(ctx context.Context) (*models.NodeStatus, error) {
	handle, err := r.resolver.Resolve(ctx, r.service)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatus, err)
	}

	info, err := r.inspector.Inspect(ctx, handle.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatus, err)
	}

	tail, err := r.fetcher.Parsed(ctx, handle, statusLogTail, r.service)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatus, err)
	}

	now := r.now().UTC()
	return &models.NodeStatus{
		Status:           orUnknown(info.Status),
		Image:            orUnknown(info.Image),
		UptimeSeconds:    uptimeSeconds(info.StartedAt, now),
		AppDir:           appDir,
		UtxoIndexEnabled: strings.Contains(strings.Join(info.Cmd, " "), utxoIndexFlag),
		LogTail:          tail,
		Timestamp:        now.Format(time.RFC3339Nano),
	}, nil
}

// uptimeSeconds returns 0 when startedAt is missing or unparsable.
func uptimeSeconds(startedAt string, now time.Time) int64 {
	if startedAt == "" {
		return 0
	}
	started, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		log.Debug("Unparsable container start time", "startedAt", startedAt, "error", err)
		return 0
	}
	if started.IsZero() || started.After(now) {
		return 0
	}
	return int64(now.Sub(started).Seconds())
}

func orUnknown(s string) string {
	if s == "" {
		return unknownDefault
	}
	return s
}
