// internal/marketplace/marketplace.go
package marketplace

import "fmt"

// Marketplace is one regional storefront of the platform.
type Marketplace struct {
	Code   string `json:"code"`
	Domain string `json:"domain"`
}

// All is the fixed storefront registry. Order here is the visit order when
// a run does not filter by code.
var All = []Marketplace{
	{Code: "UK", Domain: "amazon.co.uk"},
	{Code: "IE", Domain: "amazon.ie"},
	{Code: "DE", Domain: "amazon.de"},
	{Code: "NL", Domain: "amazon.nl"},
	{Code: "SE", Domain: "amazon.se"},
	{Code: "BE", Domain: "amazon.com.be"},
	{Code: "PL", Domain: "amazon.pl"},
	{Code: "ES", Domain: "amazon.es"},
	{Code: "IT", Domain: "amazon.it"},
	{Code: "AE", Domain: "amazon.ae"},
	{Code: "JP", Domain: "amazon.co.jp"},
	{Code: "SA", Domain: "amazon.sa"},
	{Code: "TR", Domain: "amazon.com.tr"},
}

// ByCode looks up a marketplace in the registry.
func ByCode(code string) (Marketplace, bool) {
	for _, m := range All {
		if m.Code == code {
			return m, true
		}
	}
	return Marketplace{}, false
}

// Select filters the registry down to the given codes, preserving registry
// order. An empty filter selects everything; unknown codes are ignored.
func Select(codes []string) []Marketplace {
	if len(codes) == 0 {
		return All
	}

	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	var selected []Marketplace
	for _, m := range All {
		if wanted[m.Code] {
			selected = append(selected, m)
		}
	}
	return selected
}

// Target is one (product identifier, marketplace) unit of work.
type Target struct {
	Identifier  string
	Marketplace Marketplace
}

// Targets expands identifiers against marketplaces, identifier-major, both
// in input order. This is the processing order of a run.
func Targets(identifiers []string, markets []Marketplace) []Target {
	targets := make([]Target, 0, len(identifiers)*len(markets))
	for _, id := range identifiers {
		for _, m := range markets {
			targets = append(targets, Target{Identifier: id, Marketplace: m})
		}
	}
	return targets
}

// ProductURL builds the product page URL for an identifier.
func (m Marketplace) ProductURL(identifier string) string {
	return fmt.Sprintf("https://www.%s/dp/%s", m.Domain, identifier)
}

// SellerURL builds the seller profile URL. The originating identifier is
// carried so the profile page renders in the product's context.
func (m Marketplace) SellerURL(sellerID, identifier string) string {
	return fmt.Sprintf("https://www.%s/sp?seller=%s&asin=%s", m.Domain, sellerID, identifier)
}
