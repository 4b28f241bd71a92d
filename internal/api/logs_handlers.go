// internal/api/logs_handlers.go
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/kaspa-ng/status-api/internal/logs"
	"github.com/kaspa-ng/status-api/internal/models"
)

const (
	errUnknownService  = "Unknown service"
	errLocateContainer = "Unable to locate container"
	errFetchLogs       = "Unable to fetch logs"
	errTooManyStreams  = "Too many log streams"
	defaultKeepalive   = 15 * time.Second
	textFormat         = "text"
)

// @Summary Get service logs
// @Description Returns the most recent log lines of one configured service, with terminal escape sequences removed.
// @Description
// @Description **Notes**
// @Description - `tail` is clamped into the deployment's bounds; missing or non-numeric values use the default.
// @Description - The node deployment returns parsed lines; `format=text` returns them as plain text instead.
// @Tags Logs
// @Produce json,plain
// @Param service path string true "Service key" example="indexer"
// @Param tail query string false "Number of lines from the end of the log" example="200"
// @Param format query string false "Set to 'text' for a plain-text body (node deployment)" example="text"
// @Success 200 {object} models.LogsResponse "Log snapshot. The node deployment returns models.ParsedLogsResponse."
// @Failure 404 {object} models.ErrorResponse "Unknown service or no matching container"
// @Failure 503 {object} models.ErrorResponse "Container runtime unavailable"
// @Router /api/logs/{service} [get]
func (s *Server) ServiceLogsHandler(c *gin.Context) {
	serviceKey := c.Param("service")
	tail := s.deps.Tail.Clamp(c.Query("tail"))

	handle, ok := s.resolveService(c, serviceKey)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if s.deps.Snapshot == SnapshotParsed {
		lines, err := s.deps.Fetcher.Parsed(ctx, handle, tail, serviceKey)
		if err != nil {
			s.fetchFailed(c, serviceKey, err)
			return
		}
		if c.Query("format") == textFormat {
			c.String(http.StatusOK, renderLines(lines))
			return
		}
		c.JSON(http.StatusOK, models.ParsedLogsResponse{Service: serviceKey, Lines: lines})
		return
	}

	text, err := s.deps.Fetcher.Text(ctx, handle, tail)
	if err != nil {
		s.fetchFailed(c, serviceKey, err)
		return
	}
	log.Debugf("ServiceLogs: served %d bytes for service '%s' (tail %d)", len(text), serviceKey, tail)
	c.JSON(http.StatusOK, models.LogsResponse{Service: serviceKey, Logs: text})
}

// @Summary Stream service logs
// @Description Streams one service's log as text/event-stream, starting with a backlog of `tail` lines.
// @Description
// @Description **Notes**
// @Description - Each log line is one `data:` event. Comment frames keep idle connections open.
// @Description - A runtime failure after the stream started is reported as one `event: error` frame, then the stream ends.
// @Description - The stream ends after the configured maximum duration.
// @Tags Logs
// @Produce text/event-stream
// @Param service path string true "Service key" example="indexer"
// @Param tail query string false "Number of backlog lines" example="200"
// @Success 200 {string} string "Event stream of log lines"
// @Failure 404 {object} models.ErrorResponse "Unknown service or no matching container"
// @Failure 429 {object} models.ErrorResponse "Too many concurrent streams"
// @Failure 503 {object} models.ErrorResponse "Container runtime unavailable"
// @Router /api/logs/{service}/stream [get]
func (s *Server) ServiceLogsStreamHandler(c *gin.Context) {
	serviceKey := c.Param("service")
	tail := s.deps.Tail.Clamp(c.Query("tail"))

	handle, ok := s.resolveService(c, serviceKey)
	if !ok {
		return
	}

	release, ok := s.deps.Admission.TryAcquire(serviceKey)
	if !ok {
		log.Warnf("ServiceLogsStream: rejected stream for service '%s': limit reached", serviceKey)
		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: errTooManyStreams})
		return
	}
	defer release()

	ctx := c.Request.Context()
	var cancel context.CancelFunc
	if s.deps.StreamMaxDuration > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.deps.StreamMaxDuration)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	sess := s.deps.Streamer.Open(ctx, handle, tail)
	defer sess.Close()

	keepalive := s.deps.StreamKeepalive
	if keepalive <= 0 {
		keepalive = defaultKeepalive
	}
	ticker := time.NewTicker(keepalive)
	defer ticker.Stop()

	h := c.Writer.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("X-Accel-Buffering", "no")
	h.Set("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	log.Infof("ServiceLogsStream: session '%s' started for service '%s' (container '%s', tail %d)", sess.ID, serviceKey, handle.Name, tail)
	lines := 0

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-sess.Events():
			if !open {
				return false
			}
			if _, err := io.WriteString(w, ev.Encode()); err != nil {
				return false
			}
			if ev.IsError() {
				return false
			}
			lines++
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, logs.KeepaliveFrame)
			return err == nil
		case <-ctx.Done():
			return false
		}
	})

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Infof("ServiceLogsStream: session '%s' for service '%s' reached max duration %s", sess.ID, serviceKey, s.deps.StreamMaxDuration)
	}
	log.Infof("ServiceLogsStream: session '%s' for service '%s' ended after %d lines", sess.ID, serviceKey, lines)
}

// resolveService validates the key and resolves its container, writing the
// error response itself on failure.
func (s *Server) resolveService(c *gin.Context, serviceKey string) (logs.Handle, bool) {
	if !isValidServiceKey(serviceKey) {
		log.Warnf("Log request rejected: invalid service key '%s'", serviceKey)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: errUnknownService})
		return logs.Handle{}, false
	}

	handle, err := s.deps.Resolver.Resolve(c.Request.Context(), serviceKey)
	switch {
	case err == nil:
		return handle, true
	case errors.Is(err, logs.ErrUnknownService):
		log.Warnf("Log request rejected: unknown service '%s'", serviceKey)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: errUnknownService})
	case errors.Is(err, logs.ErrContainerNotFound):
		log.Warnf("Log request failed: no container for service '%s'", serviceKey)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: errLocateContainer})
	default:
		log.Errorf("Log request failed: resolving service '%s': %v", serviceKey, err)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: errLocateContainer})
	}
	return logs.Handle{}, false
}

func (s *Server) fetchFailed(c *gin.Context, serviceKey string, err error) {
	log.Errorf("ServiceLogs failed for service '%s': %v", serviceKey, err)
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: errFetchLogs})
}

// renderLines formats parsed lines as "timestamp [level] message".
func renderLines(lines []models.LogLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Timestamp)
		b.WriteString(" [")
		b.WriteString(l.Level)
		b.WriteString("] ")
		b.WriteString(l.Message)
	}
	return b.String()
}
