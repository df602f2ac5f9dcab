// internal/scraper/product_test.go
package scraper

import "testing"

func TestParseProductPage(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		title string

		wantNotFound  bool
		wantNilSeller bool
		wantID        string
		wantName      string
		wantPlatform  bool
		wantOffers    bool
	}{
		{
			name: "third party seller with offers",
			html: `<html><body>
				<span id="productTitle">Cordless Drill</span>
				<a id="sellerProfileTriggerId" href="/sp?seller=A1XSELLER&asin=B000TEST01">Acme Tools Ltd</a>
				<div id="dynamic-aod-ingress-box"><a id="aod-ingress-link">See All Buying Options</a></div>
			</body></html>`,
			title:      "Cordless Drill",
			wantID:     "A1XSELLER",
			wantName:   "Acme Tools Ltd",
			wantOffers: true,
		},
		{
			name: "platform merchant",
			html: `<html><body>
				<span id="productTitle">Cordless Drill</span>
				<div id="merchantInfoFeature_feature_div">Dispatched from and sold by Amazon.</div>
			</body></html>`,
			title:        "Cordless Drill",
			wantName:     PlatformSellerName,
			wantPlatform: true,
		},
		{
			name: "merchant block without platform name",
			html: `<html><body>
				<span id="productTitle">Cordless Drill</span>
				<div id="merchantInfoFeature_feature_div">Sold by some shop.</div>
			</body></html>`,
			title:         "Cordless Drill",
			wantNilSeller: true,
		},
		{
			name:          "not found by title marker",
			html:          `<html><body><p>nothing here</p></body></html>`,
			title:         "Page Not Found",
			wantNotFound:  true,
			wantNilSeller: true,
		},
		{
			name:          "not found by body marker",
			html:          `<html><body><p>Sorry, we couldn't find that page.</p></body></html>`,
			title:         "Oops",
			wantNotFound:  true,
			wantNilSeller: true,
		},
		{
			name: "product title defeats not-found marker in content",
			html: `<html><body>
				<span id="productTitle">Book about error pages</span>
				<p>Review: "we couldn't find that page" is the best line.</p>
			</body></html>`,
			title:         "Book about error pages",
			wantNilSeller: true,
		},
		{
			name:          "empty page",
			html:          `<html><body></body></html>`,
			title:         "Blank",
			wantNilSeller: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseFixture(t, tt.html)
			page := parseProductPage(doc, tt.title, tt.html)

			if page.NotFound != tt.wantNotFound {
				t.Fatalf("NotFound = %v, want %v", page.NotFound, tt.wantNotFound)
			}
			if page.HasOtherSellers != tt.wantOffers {
				t.Errorf("HasOtherSellers = %v, want %v", page.HasOtherSellers, tt.wantOffers)
			}
			if tt.wantNilSeller || tt.wantNotFound {
				if page.PrimarySeller != nil {
					t.Errorf("PrimarySeller = %+v, want nil", page.PrimarySeller)
				}
				return
			}
			if page.PrimarySeller == nil {
				t.Fatal("PrimarySeller = nil, want seller")
			}
			if page.PrimarySeller.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", page.PrimarySeller.ID, tt.wantID)
			}
			if page.PrimarySeller.DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", page.PrimarySeller.DisplayName, tt.wantName)
			}
			if page.PrimarySeller.Platform != tt.wantPlatform {
				t.Errorf("Platform = %v, want %v", page.PrimarySeller.Platform, tt.wantPlatform)
			}
			if page.PrimarySeller.Source != SourceBuyBox {
				t.Errorf("Source = %s, want %s", page.PrimarySeller.Source, SourceBuyBox)
			}
		})
	}
}

func TestSellerIDFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/sp?seller=A1XSELLER&asin=B000TEST01", "A1XSELLER"},
		{"/gp/aag/main?ie=UTF8&seller=A2YSELLER", "A2YSELLER"},
		{"https://www.amazon.de/sp?seller=A3Z", "A3Z"},
		{"/sp?ie=UTF8", ""},
		{"", ""},
		// Unparseable URL falls back to the regex.
		{"::bad::seller=A9FALLBACK&x", "A9FALLBACK"},
	}

	for _, tt := range tests {
		if got := sellerIDFromHref(tt.href); got != tt.want {
			t.Errorf("sellerIDFromHref(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestContainsChallenge(t *testing.T) {
	if !containsChallenge("<p>Enter the characters you see below</p>") {
		t.Error("challenge marker not detected")
	}
	if containsChallenge("<p>ordinary product page</p>") {
		t.Error("false positive on ordinary content")
	}
}
