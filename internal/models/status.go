package models

// TableStat holds per-table counters sampled from pg_stat_user_tables.
type TableStat struct {
	TableName      string `json:"table_name"`
	LiveRows       int64  `json:"live_rows"`
	DeadRows       int64  `json:"dead_rows"`
	SeqScan        int64  `json:"seq_scan"`
	IdxScan        int64  `json:"idx_scan"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
}

// TableTotals sums the sampled tables.
type TableTotals struct {
	LiveRows       int64 `json:"liveRows"`
	TotalSizeBytes int64 `json:"totalSizeBytes"`
}

// StatsSnapshot is one database statistics collection.
type StatsSnapshot struct {
	DBSizeBytes      int64       `json:"dbSizeBytes"`
	ConnectedClients int64       `json:"connectedClients"`
	TableCount       int64       `json:"tableCount"`
	UptimeSeconds    int64       `json:"uptimeSeconds"`
	TableStats       []TableStat `json:"tableStats"`
	TableTotals      TableTotals `json:"tableTotals"`
	LargestTable     *string     `json:"largestTable"`
	Timestamp        string      `json:"timestamp"`
}

// NodeStatus describes the node container and its recent log tail.
type NodeStatus struct {
	Status           string    `json:"status" example:"running"`
	Image            string    `json:"image" example:"kaspanet/rusty-kaspad:latest"`
	UptimeSeconds    int64     `json:"uptimeSeconds"`
	AppDir           string    `json:"appDir" example:"/app/data"`
	UtxoIndexEnabled bool      `json:"utxoIndexEnabled"`
	LogTail          []LogLine `json:"logTail"`
	Timestamp        string    `json:"timestamp"`
}
