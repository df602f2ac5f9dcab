// internal/runner/run.go
package runner

import (
	"fmt"
	"sync"
	"time"

	"github.com/valpere/SellerScrapexter/internal/scraper"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Input is an accepted start request.
type Input struct {
	Identifiers      []string `json:"identifiers"`
	MaxCount         int      `json:"maxCount,omitempty"`
	Marketplaces     []string `json:"marketplaces,omitempty"`
	DelayMs          int      `json:"delayMs,omitempty"`
	SkipPlatformOnly *bool    `json:"skipPlatformOnly,omitempty"`
}

// Run is the single active run record. It is mutated only by the
// orchestrator's sequential loop plus the terminal transitions; observers
// read consistent snapshots. Once completed or failed it is never mutated
// again, only replaced wholesale by the next run.
type Run struct {
	mu          sync.Mutex
	status      Status
	startedAt   time.Time
	completedAt time.Time
	input       Input
	rows        []scraper.Row
	logs        []string
	errMsg      string

	// mirror duplicates captured log lines to the process logger.
	mirror func(line string)
}

// Snapshot is a point-in-time copy of a run's observable state. Rows and
// logs are copies; observers polling mid-run see a growing, never-shrinking
// prefix.
type Snapshot struct {
	Status      Status
	StartedAt   time.Time
	CompletedAt time.Time
	Input       Input
	Rows        []scraper.Row
	Logs        []string
	Error       string
}

func newRun(input Input, mirror func(string)) *Run {
	return &Run{
		status:    StatusRunning,
		startedAt: time.Now().UTC(),
		input:     input,
		mirror:    mirror,
	}
}

// Status returns the current lifecycle state.
func (r *Run) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// StartedAt returns the run's start time.
func (r *Run) StartedAt() time.Time {
	return r.startedAt
}

// Logf captures a formatted log line into the run, timestamped the way the
// run log is exposed to callers.
func (r *Run) Logf(format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))

	r.mu.Lock()
	r.logs = append(r.logs, line)
	mirror := r.mirror
	r.mu.Unlock()

	if mirror != nil {
		mirror(line)
	}
}

func (r *Run) appendRows(rows ...scraper.Row) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, rows...)
}

func (r *Run) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *Run) complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = StatusCompleted
	r.completedAt = time.Now().UTC()
}

func (r *Run) fail(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = StatusFailed
	r.errMsg = msg
	r.completedAt = time.Now().UTC()
}

// Snapshot returns a consistent copy of the run's observable state.
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]scraper.Row, len(r.rows))
	copy(rows, r.rows)
	logs := make([]string, len(r.logs))
	copy(logs, r.logs)

	return Snapshot{
		Status:      r.status,
		StartedAt:   r.startedAt,
		CompletedAt: r.completedAt,
		Input:       r.input,
		Rows:        rows,
		Logs:        logs,
		Error:       r.errMsg,
	}
}
