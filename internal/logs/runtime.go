// internal/logs/runtime.go
package logs

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrUnknownService is returned when a service key is not in the service table.
	ErrUnknownService = errors.New("unknown service")
	// ErrContainerNotFound is returned when a known service has no matching container.
	ErrContainerNotFound = errors.New("container not found")
	// ErrFetch wraps any runtime failure while reading a log snapshot.
	ErrFetch = errors.New("unable to fetch logs")
)

// Container is the subset of runtime container attributes the resolver needs.
type Container struct {
	ID      string
	Name    string
	State   string
	Created time.Time
}

// LogOptions describes one log read against the container runtime.
type LogOptions struct {
	Tail       int
	Follow     bool
	Timestamps bool
}

// Runtime is the container runtime API consumed by the log subsystem.
// Implementations must return a reader of plain (demultiplexed) log text.
type Runtime interface {
	ListContainers(ctx context.Context, labels []string, all bool) ([]Container, error)
	Logs(ctx context.Context, containerID string, opts LogOptions) (io.ReadCloser, error)
}

// Handle references one container resolved for a service. It is borrowed from
// the runtime and never cached across requests.
type Handle struct {
	Service string
	ID      string
	Name    string
	State   string
}
