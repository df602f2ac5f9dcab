// internal/output/manager.go
package output

import (
	"fmt"

	"github.com/valpere/SellerScrapexter/internal/config"
	"github.com/valpere/SellerScrapexter/internal/scraper"
)

// Manager dispatches a run's rows to the configured sink.
type Manager struct {
	format Format
	file   string
	table  string
}

// NewManager creates a new output manager.
func NewManager(cfg *config.ExportConfig) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("export configuration is required")
	}

	return &Manager{
		format: Format(cfg.Format),
		file:   cfg.File,
		table:  cfg.Table,
	}, nil
}

// GetWriter returns the appropriate writer for the configured format.
func (m *Manager) GetWriter() (Writer, error) {
	switch m.format {
	case FormatJSON:
		return NewJSONWriter(m.file)
	case FormatCSV:
		return NewCSVWriter(m.file)
	case FormatExcel:
		return NewExcelWriter(m.file)
	case FormatSQLite:
		return NewSQLiteWriter(m.file, m.table)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", m.format)
	}
}

// Write writes rows using the configured format.
func (m *Manager) Write(rows []scraper.Row) error {
	writer, err := m.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get writer: %w", err)
	}
	defer writer.Close()

	return writer.Write(rows)
}

// Export is the hook the orchestrator invokes on run completion.
func Export(rows []scraper.Row, cfg *config.ExportConfig) error {
	manager, err := NewManager(cfg)
	if err != nil {
		return err
	}
	return manager.Write(rows)
}
