// internal/fieldmap/fieldmap.go
package fieldmap

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Profile holds the canonical seller compliance fields. Every field is
// best-effort: absence is an empty string, never an error.
type Profile struct {
	SellerName             string
	BusinessName           string
	BusinessType           string
	TradeRegisterNumber    string
	VATNumber              string
	Phone                  string
	Email                  string
	BusinessAddress        string
	CustomerServiceAddress string
	CustomerServicePhone   string
}

// Field is one raw label/value pair captured from the details block, in
// document order. Order matters: when two raw labels reduce to the same
// canonical field the later one wins, deterministically.
type Field struct {
	Label string
	Value string
}

// Label separators. Japanese storefronts use the full-width colon.
const separators = ":："

// registrationIDRe matches values that plausibly are registration or tax
// identifiers: an optional country prefix followed by a digit run.
var registrationIDRe = regexp.MustCompile(`^[A-Z]{0,3}\d{5,}`)

// servicePhoneRe is the free-text fallback for a customer service phone
// rendered outside the structured details block.
var servicePhoneRe = regexp.MustCompile(`(?i)Customer Service Phone[:\s]+([^\n]+)`)

// ParseDetailBlock splits free text from a seller-details region into raw
// label/value pairs. Lines without a separator are skipped unless consumed
// by an address continuation: address labels swallow following unlabelled
// lines (comma-joined) until the next labelled line or the trailing
// disclaimer sentence.
func ParseDetailBlock(text string) []Field {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	var fields []Field
	for i := 0; i < len(lines); i++ {
		label, value, ok := splitLabelValue(lines[i])
		if !ok || label == "" {
			continue
		}

		if matchesAny(normLabel(label), addressLabels) {
			var parts []string
			if value != "" {
				parts = append(parts, value)
			}
			for j := i + 1; j < len(lines); j++ {
				if strings.ContainsAny(lines[j], separators) || isDisclaimer(lines[j]) {
					break
				}
				parts = append(parts, lines[j])
			}
			fields = append(fields, Field{Label: label, Value: strings.Join(parts, ", ")})
			continue
		}

		if value != "" {
			fields = append(fields, Field{Label: label, Value: value})
		}
	}
	return fields
}

// MapFields reduces raw label/value pairs to the canonical profile fields
// by matching each raw label against the per-field localized label sets.
func MapFields(fields []Field) Profile {
	var p Profile
	for _, f := range fields {
		key := normLabel(f.Label)
		switch {
		case matchesAny(key, businessNameLabels):
			p.BusinessName = f.Value
		case matchesAny(key, businessTypeLabels):
			p.BusinessType = f.Value
		case matchesAny(key, tradeRegisterLabels):
			p.TradeRegisterNumber = f.Value
		case matchesAny(key, vatLabels):
			// Some storefronts put explanatory prose where the tax ID
			// belongs. Keep the field, drop the prose.
			if plausibleRegistrationID(f.Value) {
				p.VATNumber = f.Value
			} else {
				p.VATNumber = ""
			}
		case matchesAny(key, phoneLabels):
			p.Phone = f.Value
		case matchesAny(key, emailLabels):
			p.Email = f.Value
		case matchesAny(key, businessAddressLabels):
			p.BusinessAddress = f.Value
		case matchesAny(key, customerServiceLabels):
			p.CustomerServiceAddress = f.Value
		}
	}
	return p
}

// MapDetailBlock is the full mapper: parse then reduce.
func MapDetailBlock(text string) Profile {
	return MapFields(ParseDetailBlock(text))
}

// ServicePhone scans page body text for a customer service phone rendered
// outside the details block. Returns "" when absent.
func ServicePhone(bodyText string) string {
	m := servicePhoneRe.FindStringSubmatch(bodyText)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ApplyServicePhone backfills the phone field from the free-text fallback,
// or records it separately when it differs from the structured value.
func (p *Profile) ApplyServicePhone(phone string) {
	if phone == "" {
		return
	}
	if p.Phone == "" {
		p.Phone = phone
		return
	}
	if phone != p.Phone {
		p.CustomerServicePhone = phone
	}
}

// plausibleRegistrationID decides whether a captured value looks like an
// identifier rather than explanatory prose.
func plausibleRegistrationID(v string) bool {
	if registrationIDRe.MatchString(v) {
		return true
	}
	return len([]rune(v)) < 30
}

func splitLabelValue(line string) (label, value string, ok bool) {
	idx := strings.IndexAny(line, separators)
	if idx < 0 {
		return "", "", false
	}
	label = strings.TrimSpace(line[:idx])
	// The full-width colon is three bytes wide.
	_, size := utf8.DecodeRuneInString(line[idx:])
	value = strings.TrimSpace(line[idx+size:])
	return label, value, true
}

func isDisclaimer(line string) bool {
	lower := normLabel(line)
	for _, prefix := range disclaimerPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func matchesAny(key string, labels []string) bool {
	for _, l := range labels {
		if strings.Contains(key, l) {
			return true
		}
	}
	return false
}

// normLabel lowers and NFKC-normalizes a label so that accented and
// full-width spellings compare stably against the tables.
func normLabel(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
