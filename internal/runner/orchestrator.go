// internal/runner/orchestrator.go
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/valpere/SellerScrapexter/internal/browser"
	"github.com/valpere/SellerScrapexter/internal/config"
	"github.com/valpere/SellerScrapexter/internal/marketplace"
	"github.com/valpere/SellerScrapexter/internal/monitoring"
	"github.com/valpere/SellerScrapexter/internal/scraper"
	"github.com/valpere/SellerScrapexter/internal/utils"
)

// ErrRunInProgress signals a start request while a run is executing. The
// request is rejected, never queued.
var ErrRunInProgress = errors.New("a run is already in progress")

// ErrNoIdentifiers signals a start request without identifiers.
var ErrNoIdentifiers = errors.New("missing identifiers in request")

// SessionFactory creates the page session a run will use. Tests substitute
// a fake.
type SessionFactory func(cfg config.BrowserConfig) (browser.PageSession, error)

// ExportFunc writes a completed run's rows to the configured sink.
type ExportFunc func(rows []scraper.Row, cfg *config.ExportConfig) error

// Orchestrator owns the single active run. Start is an atomic
// check-and-set; the target loop runs in the background and the caller
// observes progress through snapshots.
type Orchestrator struct {
	cfg     *config.Config
	logger  utils.Logger
	metrics *monitoring.Metrics

	newSession SessionFactory
	export     ExportFunc

	// startMu guards the check-and-set between the running check and the
	// replacement of the current run, against a start request racing a
	// completion transition.
	startMu sync.Mutex
	current *Run
}

// New creates an orchestrator backed by a real browser session.
func New(cfg *config.Config, logger utils.Logger, metrics *monitoring.Metrics) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		newSession: func(bc config.BrowserConfig) (browser.PageSession, error) {
			return browser.NewSession(bc)
		},
	}
}

// SetSessionFactory overrides how page sessions are created.
func (o *Orchestrator) SetSessionFactory(f SessionFactory) {
	o.newSession = f
}

// SetExport overrides the export hook invoked on run completion.
func (o *Orchestrator) SetExport(f ExportFunc) {
	o.export = f
}

// Start validates and accepts a start request. On acceptance the run is
// recorded as running and the target loop proceeds in the background; the
// returned time is the run's start time. A conflicting request returns
// ErrRunInProgress along with the in-progress run's start time so the
// caller can poll instead.
func (o *Orchestrator) Start(input Input) (time.Time, error) {
	if len(input.Identifiers) == 0 {
		return time.Time{}, ErrNoIdentifiers
	}

	o.startMu.Lock()
	defer o.startMu.Unlock()

	if o.current != nil && o.current.Status() == StatusRunning {
		return o.current.StartedAt(), ErrRunInProgress
	}

	run := newRun(input, o.logger.Info)
	o.current = run
	o.metrics.RunStarted()

	go o.execute(run, input)

	return run.StartedAt(), nil
}

// Current returns a snapshot of the active or last run. The second return
// is false when no run was ever started.
func (o *Orchestrator) Current() (Snapshot, bool) {
	o.startMu.Lock()
	defer o.startMu.Unlock()
	if o.current == nil {
		return Snapshot{}, false
	}
	return o.current.Snapshot(), true
}

// execute is the run loop: strict target order, one shared session, no
// cancellation. The run boundary is the last line of defense; a failure
// here marks the run failed but leaves accumulated rows and logs visible.
func (o *Orchestrator) execute(run *Run, input Input) {
	defer func() {
		if r := recover(); r != nil {
			run.fail(fmt.Sprint(r))
			o.metrics.RunFinished(string(StatusFailed), time.Since(run.StartedAt()))
			o.logger.Errorf("run failed: %v", r)
		}
	}()

	identifiers := input.Identifiers
	if input.MaxCount > 0 && input.MaxCount < len(identifiers) {
		identifiers = identifiers[:input.MaxCount]
	}
	markets := marketplace.Select(input.Marketplaces)
	targets := marketplace.Targets(identifiers, markets)

	delay := o.cfg.Run.RequestDelay
	if input.DelayMs > 0 {
		delay = time.Duration(input.DelayMs) * time.Millisecond
	}
	skip := o.cfg.Run.SkipPlatform()
	if input.SkipPlatformOnly != nil {
		skip = *input.SkipPlatformOnly
	}

	run.Logf("config: %d identifier(s) x %d marketplace(s)", len(identifiers), len(markets))
	run.Logf("delay: ~%s | skip platform-only listings: %v", delay, skip)

	session, err := o.newSession(o.cfg.Browser)
	if err != nil {
		run.Logf("x browser launch failed: %v", err)
		run.fail(fmt.Sprintf("browser launch failed: %v", err))
		o.metrics.RunFinished(string(StatusFailed), time.Since(run.StartedAt()))
		return
	}
	defer session.Close()

	pipe := scraper.NewPipeline(scraper.Params{
		Session:          session,
		Run:              o.cfg.Run,
		Delay:            delay,
		SkipPlatformOnly: skip,
		Logf:             run.Logf,
		Metrics:          o.metrics,
	})

	ctx := context.Background()
	for i, tgt := range targets {
		if i > 0 {
			_ = pipe.Pace(ctx)
		}
		run.Logf("=== %s on %s (%s) ===", tgt.Identifier, tgt.Marketplace.Code, tgt.Marketplace.Domain)
		run.appendRows(pipe.Process(ctx, tgt)...)
	}

	run.Logf("done: %d row(s)", run.rowCount())
	if sp, ok := session.(interface{ GetStats() browser.Stats }); ok {
		st := sp.GetStats()
		run.Logf("session: %d page(s) loaded, %d error(s), %d timeout(s)", st.PagesLoaded, st.Errors, st.Timeouts)
	}
	o.exportRows(run)
	run.complete()
	o.metrics.RunFinished(string(StatusCompleted), time.Since(run.StartedAt()))
	o.logger.Infof("run completed: %d rows across %d targets", run.rowCount(), len(targets))
}

// exportRows writes the run's rows to the configured sink. Export failure
// is logged, not terminal: the rows remain observable in memory.
func (o *Orchestrator) exportRows(run *Run) {
	if o.cfg.Export == nil || o.export == nil {
		return
	}
	snap := run.Snapshot()
	if err := o.export(snap.Rows, o.cfg.Export); err != nil {
		run.Logf("x export failed: %v", err)
		o.logger.Errorf("export failed: %v", err)
		return
	}
	run.Logf("exported %d row(s) to %s", len(snap.Rows), o.cfg.Export.File)
}
