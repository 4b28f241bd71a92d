// internal/api/server.go
package api

import (
	"context"
	"time"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/models"
)

// StatsSource produces database statistics snapshots.
type StatsSource interface {
	Collect(ctx context.Context) (*models.StatsSnapshot, error)
}

// NodeSource produces node container status reports.
type NodeSource interface {
	Status(ctx context.Context) (*models.NodeStatus, error)
}

// SnapshotMode selects how one-shot log snapshots are rendered.
type SnapshotMode int

const (
	// SnapshotText returns {service, logs} with the lines joined.
	SnapshotText SnapshotMode = iota
	// SnapshotParsed returns {service, lines} with each line parsed.
	SnapshotParsed
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Dependencies wires the handlers to their collaborators. Log fields may be
// nil when the flavor serves no log routes; exactly one of Stats and Node is
// expected to be set.
type Dependencies struct {
	Flavor string
	Build  BuildInfo

	Resolver  *logs.Resolver
	Fetcher   *logs.Fetcher
	Streamer  *logs.Streamer
	Admission *logs.Admission
	Tail      logs.TailBounds
	Snapshot  SnapshotMode

	StreamKeepalive   time.Duration
	StreamMaxDuration time.Duration

	// DiskPaths are reported by the metrics endpoint; defaults to "/".
	DiskPaths []string

	Stats StatsSource
	Node  NodeSource
}

// Server holds the handler set for one process.
type Server struct {
	deps      Dependencies
	sampler   hostSampler
	startTime time.Time
}

// NewServer creates the handler set and records the start time for uptime.
func NewServer(deps Dependencies) *Server {
	if deps.Admission == nil {
		deps.Admission = logs.NewAdmission(0, 0)
	}
	return &Server{deps: deps, sampler: newHostSampler(deps.DiskPaths), startTime: time.Now()}
}

func (s *Server) servesLogs() bool {
	return s.deps.Resolver != nil && s.deps.Fetcher != nil && s.deps.Streamer != nil
}
