// internal/output/json.go
package output

import (
	"encoding/json"
	"os"

	"github.com/valpere/SellerScrapexter/internal/scraper"
)

// JSONWriter writes rows as an indented JSON array.
type JSONWriter struct {
	filename string
	file     *os.File
}

// NewJSONWriter creates a new JSON writer.
func NewJSONWriter(filename string) (*JSONWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		filename: filename,
		file:     file,
	}, nil
}

// Write writes all rows to the JSON file.
func (w *JSONWriter) Write(rows []scraper.Row) error {
	if rows == nil {
		rows = []scraper.Row{}
	}
	encoder := json.NewEncoder(w.file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// Close closes the JSON writer.
func (w *JSONWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
