// internal/runner/orchestrator_test.go
package runner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/valpere/SellerScrapexter/internal/browser"
	"github.com/valpere/SellerScrapexter/internal/config"
	"github.com/valpere/SellerScrapexter/internal/scraper"
	"github.com/valpere/SellerScrapexter/internal/utils"
)

// fakeSession serves a canned not-found page for every navigation. The
// optional hold channel blocks the first navigation until closed, which lets
// tests observe a run mid-flight.
type fakeSession struct {
	hold   chan struct{}
	loads  int64
	closed bool
}

const notFoundBody = `<html><body><p>Sorry, we couldn't find that page.</p></body></html>`

func (s *fakeSession) Navigate(ctx context.Context, url string) error {
	if s.hold != nil {
		select {
		case <-s.hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.loads++
	return nil
}

func (s *fakeSession) GetStats() browser.Stats {
	return browser.Stats{PagesLoaded: s.loads}
}

func (s *fakeSession) Title(ctx context.Context) (string, error)   { return "Page Not Found", nil }
func (s *fakeSession) Content(ctx context.Context) (string, error) { return notFoundBody, nil }
func (s *fakeSession) Click(ctx context.Context, selector string) error {
	return errors.New("no such element")
}
func (s *fakeSession) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return errors.New("not visible")
}
func (s *fakeSession) Sleep(ctx context.Context, d time.Duration) error { return nil }
func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Run.RequestDelay = 0
	cfg.Run.MinInterval = 0
	cfg.Run.ProductSettle = 0
	cfg.Run.OfferSettle = 0
	cfg.Run.ProfileSettle = 0
	cfg.Run.OfferWaitTimeout = time.Millisecond
	cfg.Run.ChallengeWait = 0
	return cfg
}

func newTestOrchestrator(t *testing.T, session browser.PageSession, sessionErr error) *Orchestrator {
	t.Helper()
	o := New(testConfig(), utils.NopLogger{}, nil)
	o.SetSessionFactory(func(config.BrowserConfig) (browser.PageSession, error) {
		return session, sessionErr
	})
	return o
}

func waitForFinish(t *testing.T, o *Orchestrator) Snapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap, ok := o.Current()
		if ok && snap.Status != StatusRunning {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("run did not finish in time")
	return Snapshot{}
}

func TestStartRejectsEmptyInput(t *testing.T) {
	o := newTestOrchestrator(t, &fakeSession{}, nil)
	if _, err := o.Start(Input{}); !errors.Is(err, ErrNoIdentifiers) {
		t.Fatalf("Start() error = %v, want ErrNoIdentifiers", err)
	}
}

func TestCurrentBeforeAnyRun(t *testing.T) {
	o := newTestOrchestrator(t, &fakeSession{}, nil)
	if _, ok := o.Current(); ok {
		t.Fatal("Current() reported a run before any start")
	}
}

func TestRunCompletesWithRowPerTarget(t *testing.T) {
	session := &fakeSession{}
	o := newTestOrchestrator(t, session, nil)

	started, err := o.Start(Input{
		Identifiers:  []string{"B000TEST01", "B000TEST02"},
		Marketplaces: []string{"UK", "DE"},
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if started.IsZero() {
		t.Fatal("Start() returned zero start time")
	}

	snap := waitForFinish(t, o)
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %s, want %s (error: %s)", snap.Status, StatusCompleted, snap.Error)
	}
	if len(snap.Rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(snap.Rows))
	}
	for i, row := range snap.Rows {
		if row.Source != scraper.SourceNotFound {
			t.Errorf("rows[%d].Source = %s, want %s", i, row.Source, scraper.SourceNotFound)
		}
	}
	// Identifier-major order over the selected marketplaces.
	if snap.Rows[0].Identifier != "B000TEST01" || snap.Rows[0].MarketplaceCode != "UK" {
		t.Errorf("rows[0] = %s/%s, want B000TEST01/UK", snap.Rows[0].Identifier, snap.Rows[0].MarketplaceCode)
	}
	if snap.Rows[3].Identifier != "B000TEST02" || snap.Rows[3].MarketplaceCode != "DE" {
		t.Errorf("rows[3] = %s/%s, want B000TEST02/DE", snap.Rows[3].Identifier, snap.Rows[3].MarketplaceCode)
	}
	if !session.closed {
		t.Error("session was not closed after the run")
	}
	if len(snap.Logs) == 0 {
		t.Error("run captured no log lines")
	}
	var statsLogged bool
	for _, line := range snap.Logs {
		if strings.Contains(line, "session: 4 page(s) loaded") {
			statsLogged = true
		}
	}
	if !statsLogged {
		t.Error("run log is missing the session counters line")
	}
}

func TestMaxCountLimitsIdentifiers(t *testing.T) {
	o := newTestOrchestrator(t, &fakeSession{}, nil)

	_, err := o.Start(Input{
		Identifiers:  []string{"B000TEST01", "B000TEST02", "B000TEST03"},
		MaxCount:     1,
		Marketplaces: []string{"UK"},
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	snap := waitForFinish(t, o)
	if len(snap.Rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(snap.Rows))
	}
	if snap.Rows[0].Identifier != "B000TEST01" {
		t.Errorf("rows[0].Identifier = %s, want B000TEST01", snap.Rows[0].Identifier)
	}
}

func TestStartConflictWhileRunning(t *testing.T) {
	hold := make(chan struct{})
	o := newTestOrchestrator(t, &fakeSession{hold: hold}, nil)

	started, err := o.Start(Input{Identifiers: []string{"B000TEST01"}, Marketplaces: []string{"UK"}})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	inProgress, err := o.Start(Input{Identifiers: []string{"B000TEST02"}, Marketplaces: []string{"UK"}})
	if !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("second Start() error = %v, want ErrRunInProgress", err)
	}
	if !inProgress.Equal(started) {
		t.Errorf("conflict start time = %v, want %v", inProgress, started)
	}

	close(hold)
	snap := waitForFinish(t, o)
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %s, want %s", snap.Status, StatusCompleted)
	}

	// A finished run no longer blocks a new start.
	if _, err := o.Start(Input{Identifiers: []string{"B000TEST03"}, Marketplaces: []string{"UK"}}); err != nil {
		t.Fatalf("Start() after completion error = %v", err)
	}
	waitForFinish(t, o)
}

func TestBrowserLaunchFailureFailsRun(t *testing.T) {
	o := newTestOrchestrator(t, nil, errors.New("chrome not found"))

	if _, err := o.Start(Input{Identifiers: []string{"B000TEST01"}, Marketplaces: []string{"UK"}}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	snap := waitForFinish(t, o)
	if snap.Status != StatusFailed {
		t.Fatalf("status = %s, want %s", snap.Status, StatusFailed)
	}
	if snap.Error == "" {
		t.Error("failed run carries no error message")
	}
}

func TestExportInvokedOnCompletion(t *testing.T) {
	o := newTestOrchestrator(t, &fakeSession{}, nil)
	o.cfg.Export = &config.ExportConfig{Format: "json", File: "out.json"}

	var exported []scraper.Row
	o.SetExport(func(rows []scraper.Row, cfg *config.ExportConfig) error {
		exported = rows
		return nil
	})

	if _, err := o.Start(Input{Identifiers: []string{"B000TEST01"}, Marketplaces: []string{"UK"}}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	snap := waitForFinish(t, o)
	if snap.Status != StatusCompleted {
		t.Fatalf("status = %s, want %s", snap.Status, StatusCompleted)
	}
	if len(exported) != 1 {
		t.Fatalf("exported %d row(s), want 1", len(exported))
	}
}
