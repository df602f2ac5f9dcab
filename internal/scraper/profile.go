// internal/scraper/profile.go
package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/SellerScrapexter/internal/fieldmap"
	"github.com/valpere/SellerScrapexter/internal/marketplace"
)

// profileHeadings locate the seller-details region: the heading text the
// storefronts render above it, per language.
var profileHeadings = []string{
	"Detailed Seller Information",
	"Detaillierte Verkäuferinformationen",
	"Información detallada del vendedor",
	"Informazioni dettagliate sul venditore",
	"Informations détaillées sur le vendeur",
	"Gedetailleerde verkopersinformatie",
	"Detaljerad säljarinformation",
	"Szczegółowe informacje o sprzedawcy",
	"Satıcı Detaylı Bilgileri",
	"販売業者の詳細情報",
	"معلومات البائع التفصيلية",
	"معلومات تفصيلية عن البائع",
}

// detailsBoxSelectors walk outward from the heading to the enclosing
// structural box, nearest first.
var detailsBoxSelectors = []string{".a-box-inner", ".a-box", "section"}

// extractSellerProfile runs the seller-profile stage for one seller.
// Navigation failure returns nil for this seller only; the remaining
// sellers in the visit set are unaffected.
func (p *Pipeline) extractSellerProfile(ctx context.Context, tgt marketplace.Target, ref SellerRef) *fieldmap.Profile {
	pageURL := tgt.Marketplace.SellerURL(ref.ID, tgt.Identifier)
	p.logf("    -> seller profile: %s", ref.ID)

	if err := p.session.Navigate(ctx, pageURL); err != nil {
		p.logf("    x failed: %v", err)
		return nil
	}
	_ = p.session.Sleep(ctx, p.cfg.ProfileSettle)
	p.metrics.PageLoaded("profile")

	content, err := p.session.Content(ctx)
	if err != nil {
		p.logf("    x failed to read profile: %v", err)
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		p.logf("    x failed to parse profile: %v", err)
		return nil
	}

	profile := parseSellerProfile(doc)
	p.logf("    + %s: phone=%s, email=%s", profile.SellerName, orDash(profile.Phone), orDash(profile.Email))
	return &profile
}

// parseSellerProfile extracts the display name and compliance fields from a
// rendered profile page. Pure; testable on HTML fixtures.
func parseSellerProfile(doc *goquery.Document) fieldmap.Profile {
	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		name = "Unknown"
	}

	var profile fieldmap.Profile
	if box := findDetailsBox(doc); box != nil {
		profile = fieldmap.MapDetailBlock(TextBlock(box))
	}
	profile.ApplyServicePhone(fieldmap.ServicePhone(TextBlock(doc.Find("body"))))
	profile.SellerName = name
	return profile
}

// findDetailsBox locates the seller-details container: the nearest
// enclosing structural box of a heading matching the multilingual list.
func findDetailsBox(doc *goquery.Document) *goquery.Selection {
	var box *goquery.Selection

	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := h.Text()
		for _, heading := range profileHeadings {
			if !strings.Contains(text, heading) {
				continue
			}
			for _, sel := range detailsBoxSelectors {
				if c := h.Closest(sel); c.Length() > 0 {
					box = c
					return false
				}
			}
			if c := h.Parent().Parent(); c.Length() > 0 {
				box = c
			}
			return false
		}
		return true
	})

	return box
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
