// internal/api/health_handlers.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/kaspa-ng/status-api/internal/models"
)

// @Summary Liveness check
// @Description Returns ok while the process is serving requests. No dependency is checked.
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthzResponse "Process is alive"
// @Router /api/healthz [get]
func (s *Server) HealthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthzResponse{Status: "ok"})
}

// @Summary Get system metrics
// @Description Returns host CPU and memory, disk usage for each configured path, resource usage of the API process, and the number of open log streams.
// @Tags Health
// @Produce json
// @Success 200 {object} models.MetricsResponse "System metrics"
// @Failure 500 {object} models.ErrorResponse "Internal server error gathering metrics"
// @Router /api/health/metrics [get]
func (s *Server) SystemMetricsHandler(c *gin.Context) {
	metrics, err := s.sampler.sample(c.Request.Context())
	if err != nil {
		log.Error("error gathering system metrics", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: fmt.Sprintf("error gathering system metrics: %s", err.Error()),
		})
		return
	}

	active, byService := s.deps.Admission.Active()
	response := models.MetricsResponse{
		ServerInfo: models.ServerInfo{
			Version:   s.deps.Build.Version,
			Uptime:    formatUptime(time.Since(s.startTime)),
			StartTime: s.startTime,
		},
		Metrics: metrics,
		Streams: models.StreamMetrics{
			Active:    active,
			ByService: byService,
		},
	}

	c.JSON(http.StatusOK, response)
}

// hostSampler reads resource usage of the host, the volumes holding
// container data, and this process.
type hostSampler struct {
	diskPaths []string
	cpuWindow time.Duration
}

func newHostSampler(diskPaths []string) hostSampler {
	if len(diskPaths) == 0 {
		diskPaths = []string{"/"}
	}
	return hostSampler{diskPaths: diskPaths, cpuWindow: 200 * time.Millisecond}
}

// sample fails only when host CPU or memory cannot be read. Unreadable disk
// paths and process counters are left out of the result.
func (h hostSampler) sample(ctx context.Context) (*models.Metrics, error) {
	usage, err := cpu.PercentWithContext(ctx, h.cpuWindow, false)
	if err != nil {
		return nil, fmt.Errorf("cpu metrics error: %w", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory metrics error: %w", err)
	}

	host := &models.HostMetrics{
		Cores:          runtime.NumCPU(),
		MemTotal:       vm.Total,
		MemAvailable:   vm.Available,
		MemUsedPercent: vm.UsedPercent,
	}
	if len(usage) > 0 {
		host.CPUPercent = usage[0]
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		host.Load = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	return &models.Metrics{
		Host:    host,
		Disks:   h.disks(ctx),
		Process: processUsage(ctx, vm.Total),
	}, nil
}

func (h hostSampler) disks(ctx context.Context) []models.DiskMetrics {
	disks := make([]models.DiskMetrics, 0, len(h.diskPaths))
	for _, path := range h.diskPaths {
		u, err := disk.UsageWithContext(ctx, path)
		if err != nil {
			log.Debug("Skipping disk path", "path", path, "error", err)
			continue
		}
		disks = append(disks, models.DiskMetrics{
			Path:        path,
			Fstype:      u.Fstype,
			Total:       u.Total,
			Free:        u.Free,
			UsedPercent: u.UsedPercent,
		})
	}
	return disks
}

func processUsage(ctx context.Context, hostMem uint64) *models.ProcessMetrics {
	pm := &models.ProcessMetrics{
		PID:        os.Getpid(),
		Goroutines: runtime.NumGoroutine(),
	}
	proc, err := process.NewProcessWithContext(ctx, int32(pm.PID))
	if err != nil {
		return pm
	}
	if pct, err := proc.CPUPercentWithContext(ctx); err == nil {
		pm.CPUPercent = pct
	}
	if info, err := proc.MemoryInfoWithContext(ctx); err == nil {
		pm.RSS = info.RSS
		if hostMem > 0 {
			pm.MemPercent = float64(info.RSS) / float64(hostMem) * 100
		}
	}
	return pm
}
