// internal/scraper/pipeline.go
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	"github.com/valpere/SellerScrapexter/internal/browser"
	"github.com/valpere/SellerScrapexter/internal/config"
	"github.com/valpere/SellerScrapexter/internal/fieldmap"
	"github.com/valpere/SellerScrapexter/internal/marketplace"
	"github.com/valpere/SellerScrapexter/internal/monitoring"
)

// Pipeline drives the three extraction stages for one target at a time
// over a single shared page session. Targets are strictly sequential: the
// shared session plus paced, jittered delays are the politeness mechanism
// and must not be parallelized.
type Pipeline struct {
	session browser.PageSession
	cfg     config.RunConfig
	delay   time.Duration
	skip    bool
	limiter *rate.Limiter
	logf    func(format string, args ...interface{})
	metrics *monitoring.Metrics
}

// Params configures a pipeline for one run.
type Params struct {
	Session browser.PageSession
	Run     config.RunConfig
	// Delay is the effective inter-request base delay; jitter of ±50% is
	// drawn independently per request.
	Delay            time.Duration
	SkipPlatformOnly bool
	Logf             func(format string, args ...interface{})
	Metrics          *monitoring.Metrics
}

// NewPipeline creates a pipeline.
func NewPipeline(p Params) *Pipeline {
	logf := p.Logf
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}

	var limiter *rate.Limiter
	if p.Run.MinInterval > 0 {
		// Floor on request spacing, independent of the jitter draw.
		limiter = rate.NewLimiter(rate.Every(p.Run.MinInterval), 1)
	}

	return &Pipeline{
		session: p.Session,
		cfg:     p.Run,
		delay:   p.Delay,
		skip:    p.SkipPlatformOnly,
		limiter: limiter,
		logf:    logf,
		metrics: p.Metrics,
	}
}

// Process runs all stages for one target and returns its output rows.
// Every target yields at least one row: per visited seller, or a single
// placeholder. An unexpected failure anywhere is converted into a single
// error row and never crosses the target boundary.
func (p *Pipeline) Process(ctx context.Context, tgt marketplace.Target) (rows []Row) {
	defer func() {
		if r := recover(); r != nil {
			p.logf("  x error: %v", r)
			p.metrics.TargetProcessed("error")
			rows = []Row{errorRow(tgt, fmt.Sprint(r))}
			p.metrics.RowEmitted(string(SourceError))
		}
	}()

	page := p.extractProductPage(ctx, tgt)

	visits := NewVisitSet()
	if page.PrimarySeller != nil {
		visits.Add(*page.PrimarySeller)
	}
	if page.HasOtherSellers {
		for _, ref := range p.extractOffers(ctx) {
			visits.Add(ref)
		}
	}

	if p.skip && visits.Len() == 0 && page.PrimarySeller != nil && page.PrimarySeller.Platform {
		p.logf("  o platform-only listing, skipping seller visits")
		p.metrics.TargetProcessed("platform_only")
		row := placeholderRow(tgt, page.PrimarySeller)
		p.metrics.RowEmitted(string(row.Source))
		return []Row{row}
	}

	p.logf("  -> %d seller(s) to visit", visits.Len())
	for _, ref := range visits.Sellers() {
		if err := p.Pace(ctx); err != nil {
			panic(fmt.Sprintf("pacing interrupted: %v", err))
		}
		profile := p.extractSellerProfile(ctx, tgt, ref)
		row := sellerRow(tgt, ref, profile)
		rows = append(rows, row)
		p.metrics.SellerVisited()
		p.metrics.RowEmitted(string(row.Source))
	}

	if len(rows) == 0 {
		row := placeholderRow(tgt, page.PrimarySeller)
		rows = append(rows, row)
		p.metrics.RowEmitted(string(row.Source))
	}

	p.metrics.TargetProcessed("ok")
	return rows
}

// Pace suspends for the politeness delay ahead of a request: the rate
// floor first, then the jittered base delay.
func (p *Pipeline) Pace(ctx context.Context) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if p.delay <= 0 {
		return nil
	}
	jittered := p.delay/2 + time.Duration(rand.Int63n(int64(p.delay)))
	return p.session.Sleep(ctx, jittered)
}

func baseRow(tgt marketplace.Target) Row {
	return Row{
		Identifier:      tgt.Identifier,
		MarketplaceCode: tgt.Marketplace.Code,
		Domain:          tgt.Marketplace.Domain,
	}
}

// sellerRow assembles one output row for a visited seller. A nil profile
// (profile page failed to load) still yields a complete row with the
// display name carried over and every optional field empty.
func sellerRow(tgt marketplace.Target, ref SellerRef, profile *fieldmap.Profile) Row {
	r := baseRow(tgt)
	r.Source = ref.Source
	r.SellerID = ref.ID
	r.SellerDisplayName = ref.DisplayName
	r.SellerName = ref.DisplayName
	r.ShipsFrom = ref.ShipsFrom
	r.Price = ref.Price

	if profile != nil {
		if profile.SellerName != "" {
			r.SellerName = profile.SellerName
		}
		r.BusinessName = profile.BusinessName
		r.BusinessType = profile.BusinessType
		r.TradeRegisterNumber = profile.TradeRegisterNumber
		r.VATNumber = profile.VATNumber
		r.Phone = profile.Phone
		r.Email = profile.Email
		r.BusinessAddress = profile.BusinessAddress
		r.CustomerServiceAddress = profile.CustomerServiceAddress
		r.CustomerServicePhone = profile.CustomerServicePhone
	}
	return r
}

// placeholderRow is the single row emitted for a target with zero sellers
// visited.
func placeholderRow(tgt marketplace.Target, primary *SellerRef) Row {
	r := baseRow(tgt)
	if primary != nil {
		r.Source = SourceBuyBox
		r.SellerDisplayName = primary.DisplayName
		r.SellerName = primary.DisplayName
	} else {
		r.Source = SourceNotFound
		r.SellerDisplayName = "N/A"
		r.SellerName = "N/A"
	}
	return r
}

func errorRow(tgt marketplace.Target, msg string) Row {
	r := baseRow(tgt)
	r.Source = SourceError
	r.Error = msg
	return r
}
