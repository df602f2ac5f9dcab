// internal/output/types.go
package output

import "github.com/valpere/SellerScrapexter/internal/scraper"

// Format identifies a supported export format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatExcel  Format = "excel"
	FormatSQLite Format = "sqlite"
)

// Writer persists a run's rows to one sink.
type Writer interface {
	Write(rows []scraper.Row) error
	Close() error
}

// DefaultTable is the table name used when the configuration omits one.
const DefaultTable = "seller_rows"

// DefaultSheet is the worksheet name for Excel exports.
const DefaultSheet = "Sellers"
