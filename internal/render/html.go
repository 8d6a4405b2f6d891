// Package render writes normalized plastics records as an HTML page, a
// spreadsheet and chat replies.
package render

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"plastwarehouse/internal/models"
	"plastwarehouse/internal/normalize"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFiles embed.FS

// PlasticsTemplate is the name of the listing page template.
const PlasticsTemplate = "plastics.html"

// Templates implements echo.Renderer.
type Templates struct {
	templates *template.Template
}

func NewTemplates() *Templates {
	return &Templates{
		templates: template.Must(template.ParseFS(templateFiles, "templates/*.html")),
	}
}

func (t *Templates) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// FormValues are the raw filter inputs echoed back into the form.
type FormValues struct {
	Article      string
	Material     string
	Color        string
	Warehouse    string
	Thickness    string
	ThicknessMin string
	ThicknessMax string
}

// Query encodes the non-empty values as URL query parameters.
func (f FormValues) Query() url.Values {
	q := url.Values{}
	for _, kv := range [][2]string{
		{"article", f.Article},
		{"material", f.Material},
		{"color", f.Color},
		{"warehouse", f.Warehouse},
		{"thickness", f.Thickness},
		{"thickness_min", f.ThicknessMin},
		{"thickness_max", f.ThicknessMax},
	} {
		if kv[1] != "" {
			q.Set(kv[0], kv[1])
		}
	}
	return q
}

// PlasticsPage is the data of the listing page.
type PlasticsPage struct {
	Form      FormValues
	Header    []string
	Rows      [][]string
	ExportURL string
}

// NewPlasticsPage formats records with the display formatter.
func NewPlasticsPage(form FormValues, records []models.Plastic) PlasticsPage {
	rows := make([][]string, 0, len(records))
	for _, p := range records {
		rows = append(rows, normalize.Display.Row(p))
	}
	exportURL := "/plastics/export.csv"
	if q := form.Query().Encode(); q != "" {
		exportURL += "?" + q
	}
	return PlasticsPage{
		Form:      form,
		Header:    normalize.Header(),
		Rows:      rows,
		ExportURL: exportURL,
	}
}
