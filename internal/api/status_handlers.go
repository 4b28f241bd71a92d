// internal/api/status_handlers.go
package api

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/kaspa-ng/status-api/internal/models"
)

// ErrNotConfigured is reported when the flavor has no status source.
var ErrNotConfigured = errors.New("status source not configured")

const (
	errIndexerMetrics = "Unable to collect indexer metrics"
	errNodeStatus     = "Unable to collect node status"
)

// @Summary Get deployment status
// @Description Returns a database statistics snapshot (database and indexer deployments) or the node container status (node deployment).
// @Description Every call runs a fresh collection; nothing is cached.
// @Tags Status
// @Produce json
// @Success 200 {object} models.StatsSnapshot "Database statistics. The node deployment returns models.NodeStatus."
// @Failure 503 {object} models.ErrorResponse "Collection failed"
// @Router /api/status [get]
func (s *Server) StatusHandler(c *gin.Context) {
	ctx := c.Request.Context()

	switch {
	case s.deps.Node != nil:
		status, err := s.deps.Node.Status(ctx)
		if err != nil {
			log.Errorf("Status: node status collection failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: errNodeStatus})
			return
		}
		c.JSON(http.StatusOK, status)

	case s.deps.Stats != nil:
		snap, err := s.deps.Stats.Collect(ctx)
		if err != nil {
			log.Errorf("Status: database metrics collection failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: errIndexerMetrics})
			return
		}
		log.Debugf("Status: collected %d table stats", len(snap.TableStats))
		c.JSON(http.StatusOK, snap)

	default:
		log.Errorf("Status: %v (flavor '%s')", ErrNotConfigured, s.deps.Flavor)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: ErrNotConfigured.Error()})
	}
}
