package models

// LogLine is a best-effort decomposition of one sanitized log line.
// Fields that could not be derived hold the placeholder "--".
type LogLine struct {
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Level     string `json:"level" example:"INFO"`
	Message   string `json:"message" example:"node started"`
	Source    string `json:"source" example:"kaspad"`
}

// LogsResponse carries a joined, sanitized log snapshot.
type LogsResponse struct {
	Service string `json:"service" example:"postgres"`
	Logs    string `json:"logs"`
}

// ParsedLogsResponse carries a snapshot as structured lines.
type ParsedLogsResponse struct {
	Service string    `json:"service" example:"kaspad"`
	Lines   []LogLine `json:"lines"`
}
