// internal/scraper/types.go
package scraper

// Source records where a row's seller was discovered, or why a placeholder
// row was emitted instead.
type Source string

const (
	SourceBuyBox      Source = "buy_box"
	SourceOtherOffers Source = "other_offers"
	SourceNotFound    Source = "not_found"
	SourceError       Source = "error"
)

// PlatformSellerName is the marker recorded when the platform itself holds
// the buy box. Platform sellers have no seller id and no profile page.
const PlatformSellerName = "Amazon"

// SellerRef identifies a seller discovered on a product or offers page.
// Identity is ID; two refs with the same ID are the same seller regardless
// of where they were discovered. A platform seller carries an empty ID.
type SellerRef struct {
	ID          string
	DisplayName string
	Source      Source
	ShipsFrom   string
	Price       string
	Platform    bool
}

// ProductPage is the outcome of the product-page stage.
type ProductPage struct {
	PrimarySeller   *SellerRef
	HasOtherSellers bool
	NotFound        bool
}

// Row is one output record. All fields are strings so downstream consumers
// see a uniform schema; absent values are empty strings, never null.
type Row struct {
	Identifier             string `json:"identifier"`
	MarketplaceCode        string `json:"marketplaceCode"`
	Domain                 string `json:"domain"`
	Source                 Source `json:"source"`
	SellerID               string `json:"sellerId"`
	SellerDisplayName      string `json:"sellerDisplayName"`
	SellerName             string `json:"sellerName"`
	BusinessName           string `json:"businessName"`
	BusinessType           string `json:"businessType"`
	TradeRegisterNumber    string `json:"tradeRegisterNumber"`
	VATNumber              string `json:"vatNumber"`
	Phone                  string `json:"phone"`
	Email                  string `json:"email"`
	BusinessAddress        string `json:"businessAddress"`
	CustomerServiceAddress string `json:"customerServiceAddress"`
	CustomerServicePhone   string `json:"customerServicePhone"`
	ShipsFrom              string `json:"shipsFrom"`
	Price                  string `json:"price"`
	Error                  string `json:"error,omitempty"`
}

// RowColumns is the stable column order used by the export sinks.
func RowColumns() []string {
	return []string{
		"identifier", "marketplaceCode", "domain", "source", "sellerId",
		"sellerDisplayName", "sellerName", "businessName", "businessType",
		"tradeRegisterNumber", "vatNumber", "phone", "email",
		"businessAddress", "customerServiceAddress", "customerServicePhone",
		"shipsFrom", "price", "error",
	}
}

// Values returns the row's fields in RowColumns order.
func (r Row) Values() []string {
	return []string{
		r.Identifier, r.MarketplaceCode, r.Domain, string(r.Source), r.SellerID,
		r.SellerDisplayName, r.SellerName, r.BusinessName, r.BusinessType,
		r.TradeRegisterNumber, r.VATNumber, r.Phone, r.Email,
		r.BusinessAddress, r.CustomerServiceAddress, r.CustomerServicePhone,
		r.ShipsFrom, r.Price, r.Error,
	}
}
