// internal/models/models.go
package models

import "time"

// ErrorResponse represents a standard error message format
type ErrorResponse struct {
	Error string `json:"error" example:"Unknown service"`
}

// HealthzResponse is returned by the liveness endpoint.
type HealthzResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
	Commit  string `json:"commit" example:"1234abcd"`
	Date    string `json:"date" example:"2026-01-15T10:00:00Z"`
	Flavor  string `json:"flavor" example:"database"`
}

// --- Health metrics ---

// ServerInfo holds basic information about the API server process.
type ServerInfo struct {
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	StartTime time.Time `json:"startTime"`
}

// HostMetrics holds host-wide CPU and memory usage.
type HostMetrics struct {
	Cores          int        `json:"cores" example:"8"`
	CPUPercent     float64    `json:"cpuPercent" example:"12.5"`
	Load           [3]float64 `json:"load"`
	MemTotal       uint64     `json:"memTotal"`
	MemAvailable   uint64     `json:"memAvailable"`
	MemUsedPercent float64    `json:"memUsedPercent" example:"41.2"`
}

// DiskMetrics holds usage of the filesystem containing Path.
type DiskMetrics struct {
	Path        string  `json:"path" example:"/var/lib/docker"`
	Fstype      string  `json:"fstype" example:"ext4"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"usedPercent" example:"63.0"`
}

// ProcessMetrics holds resource usage of the API process.
type ProcessMetrics struct {
	PID        int     `json:"pid"`
	CPUPercent float64 `json:"cpuPercent"`
	RSS        uint64  `json:"rss"`
	MemPercent float64 `json:"memPercent"`
	Goroutines int     `json:"goroutines"`
}

// Metrics groups resource metrics. Load is the 1, 5 and 15 minute average.
type Metrics struct {
	Host    *HostMetrics    `json:"host"`
	Disks   []DiskMetrics   `json:"disks"`
	Process *ProcessMetrics `json:"process,omitempty"`
}

// StreamMetrics reports open live log streams.
type StreamMetrics struct {
	Active    int64            `json:"active"`
	ByService map[string]int64 `json:"byService"`
}

// MetricsResponse is returned by the metrics endpoint.
type MetricsResponse struct {
	ServerInfo ServerInfo    `json:"serverInfo"`
	Metrics    *Metrics      `json:"metrics"`
	Streams    StreamMetrics `json:"streams"`
}
