package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/models"
)

type LogsHandlersSuite struct {
	suite.Suite
	runtime *fakeRuntime
}

func TestLogsHandlersSuite(t *testing.T) {
	suite.Run(t, new(LogsHandlersSuite))
}

func (s *LogsHandlersSuite) SetupTest() {
	s.runtime = newRuntime()
}

func (s *LogsHandlersSuite) decodeError(body []byte) string {
	var resp models.ErrorResponse
	s.Require().NoError(json.Unmarshal(body, &resp), "body: %s", string(body))
	return resp.Error
}

// --- Snapshots ---

func (s *LogsHandlersSuite) TestSnapshot() {
	s.runtime.text = "2026-01-15T10:00:00Z \x1b[32mINFO\x1b[0m started\n\n2026-01-15T10:00:01Z synced\n"
	router, _ := newRouter(databaseDeps(s.runtime))

	w := doRequest(router, http.MethodGet, "/api/logs/indexer?tail=999999")
	s.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
	s.Assert().Equal([]logs.LogOptions{{Tail: 2000, Timestamps: true}}, s.runtime.logCalls())

	var resp models.LogsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Assert().Equal("indexer", resp.Service)
	s.Assert().Equal("2026-01-15T10:00:00Z INFO started\n2026-01-15T10:00:01Z synced", resp.Logs)
	s.Assert().Equal("no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	s.Assert().Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *LogsHandlersSuite) TestSnapshotTailReachesRuntimeClamped() {
	cases := []struct {
		name  string
		deps  func(*fakeRuntime) Dependencies
		path  string
		query string
		want  logs.LogOptions
	}{
		{"database above max", databaseDeps, "/api/logs/indexer", "?tail=999999", logs.LogOptions{Tail: 2000, Timestamps: true}},
		{"database negative", databaseDeps, "/api/logs/indexer", "?tail=-5", logs.LogOptions{Tail: 1, Timestamps: true}},
		{"database default", databaseDeps, "/api/logs/indexer", "?tail=abc", logs.LogOptions{Tail: 200, Timestamps: true}},
		{"node above max", nodeDeps, "/api/logs/kaspad", "?tail=999999", logs.LogOptions{Tail: 500}},
		{"node negative", nodeDeps, "/api/logs/kaspad", "?tail=-5", logs.LogOptions{Tail: 10}},
		{"node in range", nodeDeps, "/api/logs/kaspad", "?tail=50", logs.LogOptions{Tail: 50}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rt := newRuntime()
			rt.text = "line\n"
			router, _ := newRouter(tc.deps(rt))

			w := doRequest(router, http.MethodGet, tc.path+tc.query)
			s.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())
			s.Assert().Equal([]logs.LogOptions{tc.want}, rt.logCalls())
		})
	}
}

func (s *LogsHandlersSuite) TestSnapshotParsed() {
	s.runtime.text = "2026-01-15 10:00:00.000+00:00 [INFO ] Accepted block\nplain\n"
	router, _ := newRouter(nodeDeps(s.runtime))

	w := doRequest(router, http.MethodGet, "/api/logs/kaspad")
	s.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp models.ParsedLogsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Assert().Equal("kaspad", resp.Service)
	s.Assert().Equal([]models.LogLine{
		{Timestamp: "2026-01-15 10:00:00.000+00:00", Level: "INFO", Message: "Accepted block", Source: "kaspad"},
		{Timestamp: "--", Level: "--", Message: "plain", Source: "kaspad"},
	}, resp.Lines)

	w = doRequest(router, http.MethodGet, "/api/logs/kaspad?format=text")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Assert().True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	s.Assert().Equal("2026-01-15 10:00:00.000+00:00 [INFO] Accepted block\n-- [--] plain", w.Body.String())
}

func (s *LogsHandlersSuite) TestSnapshotErrors() {
	router, _ := newRouter(databaseDeps(s.runtime))

	cases := []struct {
		name   string
		target string
		status int
		error  string
	}{
		{"unknown key", "/api/logs/nginx", http.StatusNotFound, "Unknown service"},
		{"invalid key", "/api/logs/bad%20key", http.StatusNotFound, "Unknown service"},
		{"no container", "/api/logs/postgres", http.StatusNotFound, "Unable to locate container"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := doRequest(router, http.MethodGet, tc.target)
			s.Assert().Equal(tc.status, w.Code)
			s.Assert().Equal(tc.error, s.decodeError(w.Body.Bytes()))
		})
	}
}

func (s *LogsHandlersSuite) TestSnapshotRuntimeFailures() {
	router, _ := newRouter(databaseDeps(s.runtime))

	s.runtime.logsErr = errDaemon
	w := doRequest(router, http.MethodGet, "/api/logs/indexer")
	s.Assert().Equal(http.StatusServiceUnavailable, w.Code)
	s.Assert().Equal("Unable to fetch logs", s.decodeError(w.Body.Bytes()))

	s.runtime.logsErr = nil
	s.runtime.listErr = errDaemon
	w = doRequest(router, http.MethodGet, "/api/logs/indexer")
	s.Assert().Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *LogsHandlersSuite) TestIndexerFlavorHasNoLogRoutes() {
	router, _ := newRouter(Dependencies{Flavor: "indexer", Stats: fakeStats{}})

	w := doRequest(router, http.MethodGet, "/api/logs/indexer")
	s.Assert().Equal(http.StatusNotFound, w.Code)
}

// --- Streams ---

func (s *LogsHandlersSuite) startServer(deps Dependencies) (*httptest.Server, *Server) {
	router, srv := newRouter(deps)
	ts := httptest.NewServer(router)
	s.T().Cleanup(ts.Close)
	return ts, srv
}

func (s *LogsHandlersSuite) get(ctx context.Context, url string) *http.Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

// waitForActive polls until the open stream count reaches want.
func (s *LogsHandlersSuite) waitForActive(srv *Server, want int64) {
	s.Require().Eventually(func() bool {
		total, _ := srv.deps.Admission.Active()
		return total == want
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *LogsHandlersSuite) TestStreamDeliversLinesInOrder() {
	s.runtime.follow = blockingFollow("\x1b[33mone\x1b[0m\ntwo\nthree\n")
	ts, srv := s.startServer(databaseDeps(s.runtime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp := s.get(ctx, ts.URL+"/api/logs/indexer/stream?tail=999999")
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Assert().Equal("text/event-stream", resp.Header.Get("Content-Type"))
	s.Assert().Equal("no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
	s.Assert().Equal("no", resp.Header.Get("X-Accel-Buffering"))

	reader := bufio.NewReader(resp.Body)
	var frames []string
	for len(frames) < 3 {
		frame := s.readFrame(reader)
		frames = append(frames, frame)
	}
	s.Assert().Equal([]string{"data: one\n\n", "data: two\n\n", "data: three\n\n"}, frames)
	s.Assert().Equal([]logs.LogOptions{{Tail: 2000, Follow: true, Timestamps: true}}, s.runtime.logCalls())
	s.waitForActive(srv, 1)

	// Disconnect releases the admission slot.
	cancel()
	s.waitForActive(srv, 0)
}

func (s *LogsHandlersSuite) TestStreamEndsWithOneErrorEvent() {
	s.runtime.follow = func(context.Context) io.Reader {
		return io.MultiReader(strings.NewReader("a\n"), errorReader{err: errDaemon})
	}
	ts, srv := s.startServer(databaseDeps(s.runtime))

	resp := s.get(context.Background(), ts.URL+"/api/logs/indexer/stream")
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	s.Assert().Equal("data: a\n\nevent: error\ndata: Unable to stream logs\n\n", string(body))
	s.waitForActive(srv, 0)
}

func (s *LogsHandlersSuite) TestStreamKeepalive() {
	s.runtime.follow = blockingFollow("")
	deps := databaseDeps(s.runtime)
	deps.StreamKeepalive = 20 * time.Millisecond
	ts, _ := s.startServer(deps)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp := s.get(ctx, ts.URL+"/api/logs/indexer/stream")
	defer resp.Body.Close()

	s.Assert().Equal(logs.KeepaliveFrame, s.readFrame(bufio.NewReader(resp.Body)))
}

func (s *LogsHandlersSuite) TestStreamMaxDuration() {
	s.runtime.follow = blockingFollow("only\n")
	deps := databaseDeps(s.runtime)
	deps.StreamMaxDuration = 100 * time.Millisecond
	ts, srv := s.startServer(deps)

	resp := s.get(context.Background(), ts.URL+"/api/logs/indexer/stream")
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	s.Assert().Equal("data: only\n\n", string(body))
	s.waitForActive(srv, 0)
}

func (s *LogsHandlersSuite) TestStreamAdmission() {
	s.runtime.follow = blockingFollow("")
	deps := databaseDeps(s.runtime)
	deps.Admission = logs.NewAdmission(1, 1)
	ts, srv := s.startServer(deps)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	first := s.get(ctx, ts.URL+"/api/logs/indexer/stream")
	defer first.Body.Close()
	s.Require().Equal(http.StatusOK, first.StatusCode)
	s.waitForActive(srv, 1)

	second := s.get(context.Background(), ts.URL+"/api/logs/indexer/stream")
	defer second.Body.Close()
	s.Assert().Equal(http.StatusTooManyRequests, second.StatusCode)
	body, err := io.ReadAll(second.Body)
	s.Require().NoError(err)
	s.Assert().Equal("Too many log streams", s.decodeError(body))

	cancel()
	s.waitForActive(srv, 0)
}

func (s *LogsHandlersSuite) TestStreamErrorsBeforeStreaming() {
	router, _ := newRouter(databaseDeps(s.runtime))

	w := doRequest(router, http.MethodGet, "/api/logs/nginx/stream")
	s.Assert().Equal(http.StatusNotFound, w.Code)
	s.Assert().Equal("Unknown service", s.decodeError(w.Body.Bytes()))

	w = doRequest(router, http.MethodGet, "/api/logs/postgres/stream")
	s.Assert().Equal(http.StatusNotFound, w.Code)
	s.Assert().Equal("Unable to locate container", s.decodeError(w.Body.Bytes()))
}

// readFrame reads one event-stream frame, terminated by a blank line.
func (s *LogsHandlersSuite) readFrame(r *bufio.Reader) string {
	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		s.Require().NoError(err, "partial frame: %q", b.String())
		b.WriteString(line)
		if line == "\n" {
			return b.String()
		}
	}
}

type errorReader struct{ err error }

func (r errorReader) Read([]byte) (int, error) { return 0, r.err }
