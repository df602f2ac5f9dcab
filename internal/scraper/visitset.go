// internal/scraper/visitset.go
package scraper

// VisitSet is the ordered, id-unique merge of sellers discovered across
// stages. The buy-box seller is inserted first, then offer-list sellers in
// parsed order; duplicates and platform sellers (no id, no profile page)
// are skipped.
type VisitSet struct {
	order []SellerRef
	seen  map[string]bool
}

// NewVisitSet creates an empty visit set.
func NewVisitSet() *VisitSet {
	return &VisitSet{seen: make(map[string]bool)}
}

// Add inserts a seller unless it has no id or is already present. Reports
// whether the seller was inserted.
func (v *VisitSet) Add(ref SellerRef) bool {
	if ref.ID == "" || v.seen[ref.ID] {
		return false
	}
	v.seen[ref.ID] = true
	v.order = append(v.order, ref)
	return true
}

// Sellers returns the merged sellers in visit order.
func (v *VisitSet) Sellers() []SellerRef {
	return v.order
}

// Len returns the number of sellers to visit.
func (v *VisitSet) Len() int {
	return len(v.order)
}
