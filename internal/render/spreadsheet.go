package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"plastwarehouse/internal/models"
	"plastwarehouse/internal/normalize"
)

// utf8BOM makes spreadsheet applications detect UTF-8 for Cyrillic headers.
const utf8BOM = "\uFEFF"

const SpreadsheetContentType = "text/csv; charset=utf-8"

// WriteSpreadsheet writes a header row of column titles followed by one row
// per record. Missing values are blank cells.
func WriteSpreadsheet(w io.Writer, records []models.Plastic) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(normalize.Header()); err != nil {
		return fmt.Errorf("write spreadsheet header: %w", err)
	}
	for _, p := range records {
		if err := cw.Write(normalize.Spreadsheet.Row(p)); err != nil {
			return fmt.Errorf("write spreadsheet row %d: %w", p.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}
