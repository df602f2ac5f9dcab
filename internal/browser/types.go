// internal/browser/types.go
package browser

import (
	"context"
	"errors"
	"time"
)

// PageSession is the fixed query vocabulary the extraction core issues
// against the currently rendered document. The core has no knowledge of how
// the queries are fulfilled; tests substitute a fake.
type PageSession interface {
	// Navigate loads a URL and waits for the document body, within the
	// session's navigation timeout.
	Navigate(ctx context.Context, url string) error

	// Title returns the current document title.
	Title(ctx context.Context) (string, error)

	// Content returns the full HTML of the current document.
	Content(ctx context.Context) (string, error)

	// Click clicks the first element matching the selector.
	Click(ctx context.Context, selector string) error

	// WaitVisible waits for an element to appear, up to timeout.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error

	// Sleep pauses for the given duration, honoring context cancellation.
	Sleep(ctx context.Context, d time.Duration) error

	// Close releases the underlying browser.
	Close() error
}

// ErrNavigation marks page-load failures; terminal for the stage that
// issued it, never retried.
var ErrNavigation = errors.New("navigation failed")

// Stats counts session activity.
type Stats struct {
	PagesLoaded int64
	Errors      int64
	Timeouts    int64
}
