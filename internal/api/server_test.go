package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/models"
)

var errDaemon = errors.New("cannot connect to the docker daemon")

// fakeRuntime serves canned containers and log text.
type fakeRuntime struct {
	mu sync.Mutex

	containers map[string][]logs.Container // keyed by compose service label
	listErr    error
	logsErr    error
	text       string
	// follow builds the reader for following reads.
	follow func(ctx context.Context) io.Reader
	opts   []logs.LogOptions
}

func (f *fakeRuntime) ListContainers(_ context.Context, labels []string, _ bool) ([]logs.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	for _, l := range labels {
		if svc, ok := strings.CutPrefix(l, "com.docker.compose.service="); ok {
			return f.containers[svc], nil
		}
	}
	return nil, nil
}

func (f *fakeRuntime) Logs(ctx context.Context, _ string, opts logs.LogOptions) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = append(f.opts, opts)
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	if opts.Follow && f.follow != nil {
		return io.NopCloser(f.follow(ctx)), nil
	}
	return io.NopCloser(strings.NewReader(f.text)), nil
}

// logCalls returns the options of every Logs call so far.
func (f *fakeRuntime) logCalls() []logs.LogOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]logs.LogOptions(nil), f.opts...)
}

// blockingFollow emits text, then blocks until the read is cancelled.
func blockingFollow(text string) func(ctx context.Context) io.Reader {
	return func(ctx context.Context) io.Reader {
		pr, pw := io.Pipe()
		go func() {
			if text != "" {
				if _, err := io.WriteString(pw, text); err != nil {
					return
				}
			}
			<-ctx.Done()
			_ = pw.CloseWithError(ctx.Err())
		}()
		return pr
	}
}

type fakeStats struct {
	snap *models.StatsSnapshot
	err  error
}

func (f fakeStats) Collect(context.Context) (*models.StatsSnapshot, error) {
	return f.snap, f.err
}

type fakeNode struct {
	status *models.NodeStatus
	err    error
}

func (f fakeNode) Status(context.Context) (*models.NodeStatus, error) {
	return f.status, f.err
}

func newRuntime() *fakeRuntime {
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	return &fakeRuntime{
		containers: map[string][]logs.Container{
			"simply_kaspa_indexer": {{ID: "idx1", Name: "kaspa-db-indexer-1", State: "running", Created: created}},
			"kaspad":               {{ID: "kd1", Name: "kaspa-node-kaspad-1", State: "running", Created: created}},
		},
	}
}

// databaseDeps wires the multi-service flavor against rt.
func databaseDeps(rt *fakeRuntime) Dependencies {
	return Dependencies{
		Flavor: "database",
		Build:  BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-01-15"},
		Resolver: logs.NewResolver(rt, logs.ResolverOptions{
			Services:       logs.ServiceTable{"indexer": "simply_kaspa_indexer", "postgres": "kaspa_db"},
			IncludeStopped: true,
		}),
		Fetcher:           logs.NewFetcher(rt, true),
		Streamer:          logs.NewStreamer(rt),
		Admission:         logs.NewAdmission(64, 8),
		Tail:              logs.GeneralTail,
		Snapshot:          SnapshotText,
		StreamKeepalive:   time.Minute,
		StreamMaxDuration: time.Minute,
	}
}

// nodeDeps wires the node flavor against rt.
func nodeDeps(rt *fakeRuntime) Dependencies {
	d := databaseDeps(rt)
	d.Flavor = "node"
	d.Resolver = logs.NewResolver(rt, logs.ResolverOptions{
		Services: logs.ServiceTable{"kaspad": "kaspad", "frontend": "frontend"},
		Project:  "kaspa-node",
	})
	d.Fetcher = logs.NewFetcher(rt, false)
	d.Tail = logs.NodeTail
	d.Snapshot = SnapshotParsed
	return d
}

func newRouter(deps Dependencies) (*gin.Engine, *Server) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	srv := NewServer(deps)
	SetupRoutes(router, srv)
	return router, srv
}

func doRequest(router http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}
