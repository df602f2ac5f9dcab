// internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/valpere/SellerScrapexter/internal/config"
)

// stealthScript hides the obvious automation fingerprints before any page
// script runs. The storefronts degrade rendered content for detected
// automation rather than blocking outright.
const stealthScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
window.chrome = window.chrome || { runtime: {} };`

// Session is a chromedp-backed PageSession. One Session is shared across
// all targets of a run; all navigation happens in a single tab so the
// storefront sees one continuous browsing session.
type Session struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	timeout       time.Duration
	stats         Stats
}

var _ PageSession = (*Session)(nil)

// NewSession launches a browser configured for the storefront family.
func NewSession(cfg config.BrowserConfig) (*Session, error) {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox, // Required for Docker environments
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		timeout:       cfg.NavigationTimeout,
	}
	if s.timeout == 0 {
		s.timeout = config.DefaultNavigationTimeout
	}

	tasks := []chromedp.Action{
		chromedp.EmulateViewport(int64(cfg.ViewportWidth), int64(cfg.ViewportHeight)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
	}
	if err := chromedp.Run(browserCtx, tasks...); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	return s, nil
}

// Navigate loads a URL and waits for the document body. Exceeding the
// navigation timeout is terminal for the caller's stage.
func (s *Session) Navigate(ctx context.Context, url string) error {
	tctx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	)
	if err != nil {
		s.stats.Errors++
		return fmt.Errorf("%w: %s: %v", ErrNavigation, url, err)
	}

	s.stats.PagesLoaded++
	return nil
}

// Title returns the current document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	var title string
	if err := chromedp.Run(s.browserCtx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("failed to read title: %w", err)
	}
	return title, nil
}

// Content returns the full HTML of the current document.
func (s *Session) Content(ctx context.Context) (string, error) {
	var html string
	if err := chromedp.Run(s.browserCtx, chromedp.OuterHTML("html", &html)); err != nil {
		s.stats.Errors++
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return html, nil
}

// Click clicks the first element matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	tctx, cancel := context.WithTimeout(s.browserCtx, 5*time.Second)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// WaitVisible waits for an element to appear, up to timeout.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	tctx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		s.stats.Timeouts++
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

// Sleep pauses for the given duration, honoring context cancellation.
func (s *Session) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.browserCtx.Done():
		return s.browserCtx.Err()
	}
}

// GetStats returns session counters.
func (s *Session) GetStats() Stats {
	return s.stats
}

// Close releases the browser.
func (s *Session) Close() error {
	if s.browserCancel != nil {
		s.browserCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}
