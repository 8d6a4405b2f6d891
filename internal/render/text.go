package render

import (
	"fmt"
	"strings"

	"plastwarehouse/internal/models"
	"plastwarehouse/internal/normalize"
)

// NoData is shown for an empty listing on every surface.
const NoData = "Нет данных"

// ReplyLimit caps the records listed in one chat reply.
const ReplyLimit = 20

// PlasticsReply renders records as chat text, one block per record. Only the
// first ReplyLimit records are listed; a footer tells how many were shown.
func PlasticsReply(records []models.Plastic) string {
	if len(records) == 0 {
		return NoData
	}

	shown := records
	if len(shown) > ReplyLimit {
		shown = shown[:ReplyLimit]
	}

	var b strings.Builder
	for i, p := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRecord(&b, p)
	}
	if len(shown) < len(records) {
		fmt.Fprintf(&b, "\nпоказано %d из %d", len(shown), len(records))
	}
	return b.String()
}

func writeRecord(b *strings.Builder, p models.Plastic) {
	for _, f := range normalize.Fields(p) {
		fmt.Fprintf(b, "%s: %s\n", f.Title, normalize.Display.Format(f))
	}
}

// MaterialsReply renders the material catalog, one line per material.
func MaterialsReply(materials []*models.MaterialType) string {
	if len(materials) == 0 {
		return NoData
	}

	var b strings.Builder
	for _, m := range materials {
		b.WriteString(m.Name)
		if len(m.Thicknesses) > 0 {
			parts := make([]string, len(m.Thicknesses))
			for i, t := range m.Thicknesses {
				parts[i] = normalize.Display.Dimension(t)
			}
			b.WriteString(": " + strings.Join(parts, ", "))
		}
		if len(m.Colors) > 0 {
			b.WriteString(" (" + strings.Join(m.Colors, ", ") + ")")
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
