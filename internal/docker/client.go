// internal/docker/client.go
package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/client"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/node"
)

// Config holds Docker client settings.
type Config struct {
	// Host overrides DOCKER_HOST when non-empty.
	Host string
	// PingTimeout bounds the startup connectivity check.
	PingTimeout time.Duration
}

// DefaultConfig returns settings for the local daemon socket.
func DefaultConfig() Config {
	return Config{
		PingTimeout: 10 * time.Second,
	}
}

// Client wraps the Docker API client. It is created once per process and
// shared by every request.
type Client struct {
	cli *client.Client
}

var (
	_ logs.Runtime   = (*Client)(nil)
	_ node.Inspector = (*Client)(nil)
)

// NewClient connects to the Docker daemon and verifies it answers a ping.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}
	if cfg.Host != "" {
		opts = append(opts, client.WithHost(cfg.Host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().PingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ping, err := cli.Ping(pingCtx)
	if err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("docker daemon unreachable at %s: %w", cli.DaemonHost(), err)
	}
	log.Debug("Connected to docker daemon", "host", cli.DaemonHost(), "api_version", ping.APIVersion)

	return &Client{cli: cli}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}
