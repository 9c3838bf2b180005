// internal/radio/stats.go
package radio

import "time"

// PortStats are the traffic counters a transport keeps for its port.
type PortStats struct {
	BytesWritten   int64         `json:"bytes_written"`
	BytesRead      int64         `json:"bytes_read"`
	OperationCount int64         `json:"operation_count"`
	ErrorCount     int64         `json:"error_count"`
	LastActivity   time.Time     `json:"last_activity"`
	AverageLatency time.Duration `json:"average_latency"`
	IsConnected    bool          `json:"is_connected"`
}

// StatsReporter is implemented by ports that keep PortStats.
type StatsReporter interface {
	Stats() PortStats
}
