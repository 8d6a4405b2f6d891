package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"plastwarehouse/internal/models"
	"plastwarehouse/internal/normalize"

	"github.com/jung-kurt/gofpdf"
)

const PDFContentType = "application/pdf"

// pdfColumnWidths are in millimetres and fill a landscape A4 page.
var pdfColumnWidths = []float64{12, 24, 22, 18, 20, 20, 20, 20, 26, 22, 24, 20, 29}

// PDFOptions configures the printable listing.
type PDFOptions struct {
	// FontPath is a UTF-8 TrueType font. Without it the core Arial font is
	// used and characters outside cp1252 are not printable.
	FontPath string
	Title    string
}

// ErrNoUnicodeFont reports that Cyrillic cell values will not print.
var ErrNoUnicodeFont = errors.New("pdf font not configured: cyrillic text will not render")

// Check reports whether the options can render the listing's Cyrillic text.
func (o PDFOptions) Check() error {
	if o.FontPath == "" {
		return ErrNoUnicodeFont
	}
	if _, err := os.Stat(o.FontPath); err != nil {
		return fmt.Errorf("pdf font: %w", err)
	}
	return nil
}

// WritePDF writes records as a printable landscape table using the display formatter.
func WritePDF(w io.Writer, records []models.Plastic, opts PDFOptions) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath != "" {
		if err := opts.Check(); err != nil {
			return err
		}
		family = "body"
		pdf.AddUTF8Font(family, "", opts.FontPath)
		pdf.AddUTF8Font(family, "B", opts.FontPath)
		tr = func(s string) string { return s }
	}

	header := normalize.Header()
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(family, "B", 8)
		pdf.SetFillColor(242, 242, 242)
		for i, title := range header {
			pdf.CellFormat(pdfColumnWidths[i], 7, tr(title), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	})

	pdf.AddPage()
	if opts.Title != "" {
		pdf.SetFont(family, "B", 12)
		pdf.CellFormat(0, 8, tr(opts.Title), "", 1, "L", false, 0, "")
	}

	pdf.SetFont(family, "", 7)
	if len(records) == 0 {
		pdf.CellFormat(0, 6, tr(NoData), "1", 1, "L", false, 0, "")
	}
	for _, p := range records {
		for i, cell := range normalize.Display.Row(p) {
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
