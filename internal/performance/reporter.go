package performance

import (
	"fmt"
	"runtime"
	"time"
)

// UptimeLayout renders an uptime as an offset from the Unix epoch
const UptimeLayout = "2006-01-02 15:04:05.000"

// Report is a snapshot of process metrics
type Report struct {
	Time    string `json:"time"`
	Memory  string `json:"memory"`
	Threads int    `json:"threads"`
}

// Reporter measures uptime from a fixed start instant
type Reporter struct {
	started time.Time
	now     func() time.Time
}

// NewReporter creates a reporter whose uptime starts now
func NewReporter() *Reporter {
	return &Reporter{started: time.Now(), now: time.Now}
}

// Uptime is the elapsed time since the reporter was created
func (r *Reporter) Uptime() time.Duration {
	return r.now().Sub(r.started)
}

// FormatUptime renders d as the epoch plus d, in UTC
func FormatUptime(d time.Duration) string {
	return time.UnixMilli(d.Milliseconds()).UTC().Format(UptimeLayout)
}

// FormatMemory renders a byte count in megabytes with two decimals
func FormatMemory(bytes uint64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/(1024.0*1024.0))
}

// Snapshot reads the current heap usage and goroutine count
func (r *Reporter) Snapshot() Report {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return Report{
		Time:    FormatUptime(r.Uptime()),
		Memory:  FormatMemory(ms.HeapInuse),
		Threads: runtime.NumGoroutine(),
	}
}
