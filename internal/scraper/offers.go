// internal/scraper/offers.go
package scraper

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Offers panel selectors.
const (
	selAODIngressLink = "#aod-ingress-link"
	selAODOfferList   = "#aod-offer-list"
	selAODPinnedOffer = "#aod-pinned-offer"
	selAODOffer       = "#aod-offer-list #aod-offer"
	selOfferSeller    = "a[href*='/gp/aag/main']"
	selOfferShipsFrom = "[id*='shipsFrom'] .a-col-right"
	selOfferPrice     = ".a-price .a-offscreen"
)

// aodCloseSelectors are tried in order when closing the panel. Failure to
// close is non-fatal.
var aodCloseSelectors = []string{
	"button[data-action='a-popover-close']",
	".aod-close-button",
	"[aria-label='Close']",
}

// shipsFromPrefixRe strips the localized label prefix the panel renders
// inside the ships-from cell.
var shipsFromPrefixRe = regexp.MustCompile(`(?i)(dispatches from|ships from|expédié depuis|versand durch)`)

// extractOffers runs the offer-list stage: open the panel, wait for the
// async-rendered list, parse, close. Any failure yields an empty seller
// list rather than failing the target.
func (p *Pipeline) extractOffers(ctx context.Context) []SellerRef {
	p.logf("  -> opening all offers panel")

	if err := p.session.Click(ctx, selAODIngressLink); err != nil {
		p.logf("  x offers panel entry point: %v", err)
		return nil
	}
	if err := p.session.WaitVisible(ctx, selAODOfferList, p.cfg.OfferWaitTimeout); err != nil {
		p.logf("  x offers panel did not render: %v", err)
		return nil
	}
	_ = p.session.Sleep(ctx, p.cfg.OfferSettle)
	p.metrics.PageLoaded("offers")

	content, err := p.session.Content(ctx)
	if err != nil {
		p.logf("  x failed to read offers panel: %v", err)
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		p.logf("  x failed to parse offers panel: %v", err)
		return nil
	}

	sellers := parseOffers(doc)
	p.logf("  + %d unique seller(s) in offers panel", len(sellers))
	for _, s := range sellers {
		p.logf("    - %s [%s]", s.DisplayName, s.ID)
	}

	p.closeOffersPanel(ctx)
	return sellers
}

// closeOffersPanel is best effort; a stuck popover only costs screen estate
// since the next stage navigates away anyway.
func (p *Pipeline) closeOffersPanel(ctx context.Context) {
	for _, sel := range aodCloseSelectors {
		if err := p.session.Click(ctx, sel); err == nil {
			_ = p.session.Sleep(ctx, 500*time.Millisecond)
			return
		}
	}
}

// parseOffers extracts sellers from a rendered offers panel, deduplicated
// by seller id with first occurrence winning. The pinned offer is processed
// first so it takes priority over the regular list.
func parseOffers(doc *goquery.Document) []SellerRef {
	var sellers []SellerRef
	seen := make(map[string]bool)

	add := func(offer *goquery.Selection) {
		ref, ok := parseOffer(offer)
		if !ok || seen[ref.ID] {
			return
		}
		seen[ref.ID] = true
		sellers = append(sellers, ref)
	}

	if pinned := doc.Find(selAODPinnedOffer).First(); pinned.Length() > 0 {
		add(pinned)
	}
	doc.Find(selAODOffer).Each(func(_ int, offer *goquery.Selection) {
		add(offer)
	})

	return sellers
}

// parseOffer extracts one offer. Offers whose seller link does not resolve
// to a seller id are dropped.
func parseOffer(offer *goquery.Selection) (SellerRef, bool) {
	link := offer.Find(selOfferSeller).First()
	if link.Length() == 0 {
		return SellerRef{}, false
	}

	href, _ := link.Attr("href")
	id := sellerIDFromHref(href)
	if id == "" {
		return SellerRef{}, false
	}

	ref := SellerRef{
		ID:          id,
		DisplayName: strings.TrimSpace(link.Text()),
		Source:      SourceOtherOffers,
		Price:       strings.TrimSpace(offer.Find(selOfferPrice).First().Text()),
	}
	if sf := offer.Find(selOfferShipsFrom).First(); sf.Length() > 0 {
		ref.ShipsFrom = cleanShipsFrom(strings.Join(TextLines(sf), " "))
	}
	return ref, true
}

func cleanShipsFrom(s string) string {
	s = shipsFromPrefixRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
