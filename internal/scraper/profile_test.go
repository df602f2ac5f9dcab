// internal/scraper/profile_test.go
package scraper

import "testing"

const profileFixture = `<html><body>
<h1>Acme Tools Ltd</h1>
<div class="a-box">
	<div class="a-box-inner">
		<h2>Detailed Seller Information</h2>
		<div>Business Name: Acme Tools Limited</div>
		<div>Business Type: Limited Company</div>
		<div>VAT number: GB123456789</div>
		<div>Phone number: +44 20 7946 0000</div>
		<div>Business Address:</div>
		<div>1 High St</div>
		<div>London</div>
		<div>This seller has indicated compliance with applicable regulations.</div>
	</div>
</div>
<p>Customer Service Phone: +44 20 7946 0999</p>
</body></html>`

func TestParseSellerProfile(t *testing.T) {
	doc := parseFixture(t, profileFixture)
	profile := parseSellerProfile(doc)

	if profile.SellerName != "Acme Tools Ltd" {
		t.Errorf("SellerName = %q, want Acme Tools Ltd", profile.SellerName)
	}
	if profile.BusinessName != "Acme Tools Limited" {
		t.Errorf("BusinessName = %q", profile.BusinessName)
	}
	if profile.BusinessType != "Limited Company" {
		t.Errorf("BusinessType = %q", profile.BusinessType)
	}
	if profile.VATNumber != "GB123456789" {
		t.Errorf("VATNumber = %q", profile.VATNumber)
	}
	if profile.Phone != "+44 20 7946 0000" {
		t.Errorf("Phone = %q", profile.Phone)
	}
	if profile.BusinessAddress != "1 High St, London" {
		t.Errorf("BusinessAddress = %q, want continuation joined and disclaimer excluded", profile.BusinessAddress)
	}
	// Differs from the structured phone, so it lands in the separate field.
	if profile.CustomerServicePhone != "+44 20 7946 0999" {
		t.Errorf("CustomerServicePhone = %q", profile.CustomerServicePhone)
	}
}

func TestParseSellerProfileGermanHeading(t *testing.T) {
	doc := parseFixture(t, `<html><body>
<h1>Musterfirma GmbH</h1>
<div class="a-box"><div class="a-box-inner">
	<h3>Detaillierte Verkäuferinformationen</h3>
	<div>Firmenname: Musterfirma GmbH</div>
	<div>USt-ID: DE987654321</div>
</div></div>
</body></html>`)

	profile := parseSellerProfile(doc)
	if profile.BusinessName != "Musterfirma GmbH" {
		t.Errorf("BusinessName = %q", profile.BusinessName)
	}
	if profile.VATNumber != "DE987654321" {
		t.Errorf("VATNumber = %q", profile.VATNumber)
	}
}

func TestParseSellerProfileNoDetailsBox(t *testing.T) {
	doc := parseFixture(t, `<html><body><h1>Bare Seller</h1><p>No details published.</p></body></html>`)

	profile := parseSellerProfile(doc)
	if profile.SellerName != "Bare Seller" {
		t.Errorf("SellerName = %q", profile.SellerName)
	}
	if profile.BusinessName != "" || profile.VATNumber != "" {
		t.Errorf("expected empty fields, got %+v", profile)
	}
}

func TestParseSellerProfileMissingHeading(t *testing.T) {
	doc := parseFixture(t, `<html><body><p>empty page</p></body></html>`)

	profile := parseSellerProfile(doc)
	if profile.SellerName != "Unknown" {
		t.Errorf("SellerName = %q, want Unknown", profile.SellerName)
	}
}

func TestFindDetailsBoxFallsBackToAncestor(t *testing.T) {
	// No a-box wrapper: the grandparent of the heading is used.
	doc := parseFixture(t, `<html><body>
<main><span><h2>Detailed Seller Information</h2></span><div>Business Name: Fallback Ltd</div></main>
</body></html>`)

	box := findDetailsBox(doc)
	if box == nil {
		t.Fatal("findDetailsBox() = nil, want ancestor fallback")
	}
}
