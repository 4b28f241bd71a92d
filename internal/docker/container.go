// internal/docker/container.go
package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/node"
)

// ListContainers returns containers carrying every label in labels.
// Stopped containers are included only when all is set.
func (c *Client) ListContainers(ctx context.Context, labels []string, all bool) ([]logs.Container, error) {
	args := filters.NewArgs()
	for _, l := range labels {
		args.Add("label", l)
	}

	list, err := c.cli.ContainerList(ctx, container.ListOptions{All: all, Filters: args})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	result := make([]logs.Container, 0, len(list))
	for _, s := range list {
		result = append(result, logs.Container{
			ID:      s.ID,
			Name:    containerName(s.Names, s.ID),
			State:   string(s.State),
			Created: time.Unix(s.Created, 0),
		})
	}
	return result, nil
}

// Inspect returns the attributes the node status report needs.
func (c *Client) Inspect(ctx context.Context, id string) (node.ContainerInfo, error) {
	info, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		if client.IsErrNotFound(err) {
			return node.ContainerInfo{}, fmt.Errorf("%w: %s", logs.ErrContainerNotFound, id)
		}
		return node.ContainerInfo{}, fmt.Errorf("failed to inspect container %s: %w", id, err)
	}

	result := node.ContainerInfo{ID: id}
	if info.ContainerJSONBase != nil {
		result.Name = strings.TrimPrefix(info.Name, "/")
		if info.State != nil {
			result.Status = string(info.State.Status)
			result.StartedAt = info.State.StartedAt
		}
	}
	if info.Config != nil {
		result.Image = info.Config.Image
		result.Cmd = append([]string(nil), info.Config.Cmd...)
	}
	return result, nil
}

func containerName(names []string, id string) string {
	if len(names) == 0 {
		if len(id) > 12 {
			return id[:12]
		}
		return id
	}
	return strings.TrimPrefix(names[0], "/")
}
