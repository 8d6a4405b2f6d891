// Package normalize turns scanned warehouse_plastics rows into the canonical
// record shared by the JSON API, the HTML table and the spreadsheet export.
package normalize

import (
	"time"

	"plastwarehouse/internal/models"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04"
)

// Normalizer renders timestamps in Location. The zero value uses UTC.
type Normalizer struct {
	Location *time.Location
}

func New(loc *time.Location) Normalizer {
	return Normalizer{Location: loc}
}

// Record normalizes a row with the zero Normalizer.
func Record(row *models.PlasticRow) models.Plastic {
	return Normalizer{}.Record(row)
}

// Record converts one row. It is pure and handles every well-typed input;
// NULL columns become nil fields.
func (n Normalizer) Record(row *models.PlasticRow) models.Plastic {
	return models.Plastic{
		ID:           row.ID,
		Article:      text(row.Article),
		Material:     text(row.Material),
		Thickness:    number(row.Thickness),
		Color:        text(row.Color),
		Length:       number(row.Length),
		Width:        number(row.Width),
		Warehouse:    text(row.Warehouse),
		Comment:      text(row.Comment),
		EmployeeID:   integer(row.EmployeeID),
		EmployeeName: text(row.EmployeeName),
		ArrivalDate:  date(row.ArrivalDate),
		ArrivalAt:    n.timestamp(row.ArrivalAt),
	}
}

// Records normalizes rows in order.
func (n Normalizer) Records(rows []*models.PlasticRow) []models.Plastic {
	out := make([]models.Plastic, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.Record(row))
	}
	return out
}

func (n Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.UTC
	}
	return n.Location
}

func text(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func integer(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

// number converts NUMERIC to the nearest float64.
func number(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Decimal.InexactFloat64()
	return &f
}

func date(v pgtype.Date) *string {
	if !v.Valid {
		return nil
	}
	var s string
	switch v.InfinityModifier {
	case pgtype.Infinity:
		s = "infinity"
	case pgtype.NegativeInfinity:
		s = "-infinity"
	default:
		s = v.Time.Format(DateLayout)
	}
	return &s
}

// timestamp renders minute precision; seconds are dropped, not rounded.
func (n Normalizer) timestamp(v pgtype.Timestamptz) *string {
	if !v.Valid {
		return nil
	}
	var s string
	switch v.InfinityModifier {
	case pgtype.Infinity:
		s = "infinity"
	case pgtype.NegativeInfinity:
		s = "-infinity"
	default:
		s = v.Time.In(n.location()).Format(TimestampLayout)
	}
	return &s
}
