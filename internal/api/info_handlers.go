// internal/api/info_handlers.go
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaspa-ng/status-api/internal/models"
)

// @Summary Get API server version
// @Description Returns build information and the deployment flavor.
// @Tags Version
// @Produce json
// @Success 200 {object} models.VersionResponse "Build details"
// @Router /api/version [get]
func (s *Server) VersionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.VersionResponse{
		Version: s.deps.Build.Version,
		Commit:  s.deps.Build.Commit,
		Date:    s.deps.Build.Date,
		Flavor:  s.deps.Flavor,
	})
}
