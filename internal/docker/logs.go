// internal/docker/logs.go
package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/kaspa-ng/status-api/internal/logs"
)

// Logs opens a log read for a container and returns plain text. Output of
// non-TTY containers is demultiplexed; stdout and stderr frames are merged
// into one reader in arrival order.
func (c *Client) Logs(ctx context.Context, id string, opts logs.LogOptions) (io.ReadCloser, error) {
	info, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		if client.IsErrNotFound(err) {
			return nil, fmt.Errorf("%w: %s", logs.ErrContainerNotFound, id)
		}
		return nil, fmt.Errorf("inspecting container %s for TTY: %w", id, err)
	}

	logOpts := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     opts.Follow,
		Timestamps: opts.Timestamps,
	}
	if opts.Tail > 0 {
		logOpts.Tail = strconv.Itoa(opts.Tail)
	}

	reader, err := c.cli.ContainerLogs(ctx, id, logOpts)
	if err != nil {
		return nil, fmt.Errorf("getting logs for %s: %w", id, err)
	}

	if info.Config != nil && info.Config.Tty {
		return reader, nil
	}
	return demux(reader), nil
}

// demuxReader reads demultiplexed output; closing it also closes the source,
// which stops the copy goroutine.
type demuxReader struct {
	*io.PipeReader
	src io.ReadCloser
}

func (d *demuxReader) Close() error {
	_ = d.PipeReader.Close()
	return d.src.Close()
}

func demux(src io.ReadCloser) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, src)
		_ = pw.CloseWithError(err)
	}()
	return &demuxReader{PipeReader: pr, src: src}
}
