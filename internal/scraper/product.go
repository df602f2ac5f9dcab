// internal/scraper/product.go
package scraper

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/SellerScrapexter/internal/marketplace"
)

// Product page selectors and markers. All target storefronts share one
// layout family, so these are fixed rather than configurable.
const (
	selProductTitle  = "#productTitle"
	selSellerProfile = "#sellerProfileTriggerId"
	selMerchantInfo  = "#merchantInfoFeature_feature_div"
	selAODIngressBox = "#dynamic-aod-ingress-box"
)

// challengeMarkers identify the interstitial verification page served in
// place of normal content.
var challengeMarkers = []string{
	"Enter the characters you see below",
	"Type the characters you see in this image",
}

// notFoundMarkers identify a missing product. Either marker alone is not
// enough: pages can mention "not found" in content, so the product title
// element must also be absent.
var (
	notFoundTitleMarker = "Page Not Found"
	notFoundBodyMarker  = "we couldn't find that page"
)

var sellerParamRe = regexp.MustCompile(`seller=([A-Z0-9]+)`)

// extractProductPage runs the product-page stage for one target. Navigation
// failure is terminal for the whole target: the empty result stops the
// later stages because there is nothing to anchor an offers lookup on.
func (p *Pipeline) extractProductPage(ctx context.Context, tgt marketplace.Target) ProductPage {
	pageURL := tgt.Marketplace.ProductURL(tgt.Identifier)
	p.logf("  -> product page: %s", pageURL)

	if err := p.session.Navigate(ctx, pageURL); err != nil {
		p.logf("  x failed to load: %v", err)
		return ProductPage{}
	}
	_ = p.session.Sleep(ctx, p.cfg.ProductSettle)
	p.metrics.PageLoaded("product")

	content, err := p.session.Content(ctx)
	if err != nil {
		p.logf("  x failed to read page: %v", err)
		return ProductPage{}
	}

	if containsChallenge(content) {
		// One fixed recovery wait per page load, then inspect the same
		// loaded page. No re-navigation, no retry counter.
		p.logf("  ! bot challenge detected on %s, waiting %s", tgt.Marketplace.Code, p.cfg.ChallengeWait)
		p.metrics.BotChallenge()
		_ = p.session.Sleep(ctx, p.cfg.ChallengeWait)
		if fresh, err := p.session.Content(ctx); err == nil {
			content = fresh
		}
	}

	title, _ := p.session.Title(ctx)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		p.logf("  x failed to parse page: %v", err)
		return ProductPage{}
	}

	page := parseProductPage(doc, title, content)
	switch {
	case page.NotFound:
		p.logf("  x product not found on %s", tgt.Marketplace.Code)
	case page.PrimarySeller == nil:
		p.logf("  o no buy box seller identified")
	case page.PrimarySeller.Platform:
		p.logf("  + buy box seller: %s", page.PrimarySeller.DisplayName)
	default:
		p.logf("  + buy box seller (3P): %s [%s]", page.PrimarySeller.DisplayName, page.PrimarySeller.ID)
	}
	if page.HasOtherSellers {
		p.logf("  + other sellers available")
	} else if !page.NotFound {
		p.logf("  o no other sellers")
	}

	return page
}

// parseProductPage inspects a rendered product page. Pure; testable on
// HTML fixtures.
func parseProductPage(doc *goquery.Document, title, content string) ProductPage {
	hasProductTitle := doc.Find(selProductTitle).Length() > 0
	if !hasProductTitle &&
		(strings.Contains(title, notFoundTitleMarker) || strings.Contains(content, notFoundBodyMarker)) {
		return ProductPage{NotFound: true}
	}

	var primary *SellerRef
	if link := doc.Find(selSellerProfile).First(); link.Length() > 0 {
		href, _ := link.Attr("href")
		primary = &SellerRef{
			ID:          sellerIDFromHref(href),
			DisplayName: strings.TrimSpace(link.Text()),
			Source:      SourceBuyBox,
		}
	} else if merchant := doc.Find(selMerchantInfo).First(); merchant.Length() > 0 {
		if strings.Contains(strings.ToLower(merchant.Text()), "amazon") {
			primary = &SellerRef{
				DisplayName: PlatformSellerName,
				Source:      SourceBuyBox,
				Platform:    true,
			}
		}
	}

	return ProductPage{
		PrimarySeller:   primary,
		HasOtherSellers: doc.Find(selAODIngressBox).Length() > 0,
	}
}

func containsChallenge(content string) bool {
	for _, marker := range challengeMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

// sellerIDFromHref pulls the seller id out of a profile link. Returns ""
// when the link does not resolve to one.
func sellerIDFromHref(href string) string {
	if href == "" {
		return ""
	}
	if u, err := url.Parse(href); err == nil {
		if id := u.Query().Get("seller"); id != "" {
			return id
		}
	}
	if m := sellerParamRe.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return ""
}
