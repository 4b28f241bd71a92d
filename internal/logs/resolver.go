// internal/logs/resolver.go
package logs

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
)

const (
	composeServiceLabel = "com.docker.compose.service"
	composeProjectLabel = "com.docker.compose.project"
)

// ServiceTable maps a logical service key to its compose service label value.
type ServiceTable map[string]string

// Keys returns the service keys in sorted order.
func (t ServiceTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LabelFilter is the label selector for one service. Project is optional;
// an empty value means no project scope.
type LabelFilter struct {
	Service string
	Project string
}

// Labels renders the filter as runtime label expressions.
func (f LabelFilter) Labels() []string {
	labels := []string{composeServiceLabel + "=" + f.Service}
	if f.Project != "" {
		labels = append(labels, composeProjectLabel+"="+f.Project)
	}
	return labels
}

// ResolverOptions controls how service keys are matched to containers.
type ResolverOptions struct {
	Services ServiceTable
	// Project scopes lookups to one compose project when non-empty.
	Project string
	// IncludeStopped also matches containers that are not running.
	IncludeStopped bool
}

// Resolver maps service keys to live container handles.
type Resolver struct {
	runtime Runtime
	opts    ResolverOptions
}

// NewResolver creates a resolver backed by the given runtime client.
func NewResolver(runtime Runtime, opts ResolverOptions) *Resolver {
	return &Resolver{runtime: runtime, opts: opts}
}

// Services returns the configured service table.
func (r *Resolver) Services() ServiceTable {
	return r.opts.Services
}

// Filter returns the label filter for a service key.
func (r *Resolver) Filter(serviceKey string) (LabelFilter, error) {
	label, ok := r.opts.Services[serviceKey]
	if !ok || label == "" {
		return LabelFilter{}, fmt.Errorf("%w: %s", ErrUnknownService, serviceKey)
	}
	return LabelFilter{Service: label, Project: r.opts.Project}, nil
}

// Resolve queries the runtime for the container backing serviceKey.
// When several containers match, the most recently created one wins.
func (r *Resolver) Resolve(ctx context.Context, serviceKey string) (Handle, error) {
	filter, err := r.Filter(serviceKey)
	if err != nil {
		return Handle{}, err
	}

	containers, err := r.runtime.ListContainers(ctx, filter.Labels(), r.opts.IncludeStopped)
	if err != nil {
		return Handle{}, fmt.Errorf("list containers for service '%s': %w", serviceKey, err)
	}
	if len(containers) == 0 {
		log.Debug("No container matched service labels", "service", serviceKey, "labels", filter.Labels())
		return Handle{}, fmt.Errorf("%w: %s", ErrContainerNotFound, serviceKey)
	}

	best := containers[0]
	for _, c := range containers[1:] {
		if c.Created.After(best.Created) || (c.Created.Equal(best.Created) && c.ID < best.ID) {
			best = c
		}
	}
	if len(containers) > 1 {
		log.Debug("Multiple containers matched, using newest", "service", serviceKey, "count", len(containers), "container", best.Name)
	}

	return Handle{
		Service: serviceKey,
		ID:      best.ID,
		Name:    best.Name,
		State:   best.State,
	}, nil
}
