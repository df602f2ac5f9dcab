// internal/marketplace/marketplace_test.go
package marketplace

import (
	"reflect"
	"testing"
)

func TestRegistrySize(t *testing.T) {
	if len(All) != 13 {
		t.Errorf("registry has %d entries, want 13", len(All))
	}

	seen := make(map[string]bool)
	for _, m := range All {
		if seen[m.Code] {
			t.Errorf("duplicate marketplace code %s", m.Code)
		}
		seen[m.Code] = true
		if m.Domain == "" {
			t.Errorf("marketplace %s has empty domain", m.Code)
		}
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		codes     []string
		wantCodes []string
	}{
		{"empty filter selects all", nil, nil},
		{"single code", []string{"DE"}, []string{"DE"}},
		{"registry order preserved", []string{"TR", "UK", "JP"}, []string{"UK", "JP", "TR"}},
		{"unknown codes ignored", []string{"US", "DE"}, []string{"DE"}},
		{"all unknown selects none", []string{"US", "FR"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := Select(tt.codes)

			if tt.wantCodes == nil {
				if len(selected) != len(All) {
					t.Errorf("expected full registry, got %d entries", len(selected))
				}
				return
			}

			got := make([]string, 0, len(selected))
			for _, m := range selected {
				got = append(got, m.Code)
			}
			if !reflect.DeepEqual(got, tt.wantCodes) && !(len(got) == 0 && len(tt.wantCodes) == 0) {
				t.Errorf("Select(%v) = %v, want %v", tt.codes, got, tt.wantCodes)
			}
		})
	}
}

func TestTargetsOrder(t *testing.T) {
	markets := Select([]string{"UK", "DE"})
	targets := Targets([]string{"B0TEST1", "B0TEST2"}, markets)

	want := []string{"B0TEST1/UK", "B0TEST1/DE", "B0TEST2/UK", "B0TEST2/DE"}
	if len(targets) != len(want) {
		t.Fatalf("expected %d targets, got %d", len(want), len(targets))
	}
	for i, tgt := range targets {
		key := tgt.Identifier + "/" + tgt.Marketplace.Code
		if key != want[i] {
			t.Errorf("target %d = %s, want %s", i, key, want[i])
		}
	}
}

func TestURLBuilders(t *testing.T) {
	de, ok := ByCode("DE")
	if !ok {
		t.Fatal("DE missing from registry")
	}

	if got := de.ProductURL("B0TEST1"); got != "https://www.amazon.de/dp/B0TEST1" {
		t.Errorf("unexpected product URL: %s", got)
	}
	if got := de.SellerURL("A1SELLER", "B0TEST1"); got != "https://www.amazon.de/sp?seller=A1SELLER&asin=B0TEST1" {
		t.Errorf("unexpected seller URL: %s", got)
	}
}
