package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// PlasticSearchFilter holds optional search criteria for warehouse plastics.
// Empty text fields and nil numeric fields are absent.
type PlasticSearchFilter struct {
	Article      string           `json:"article,omitempty" query:"article"`     // substring, case-insensitive
	Material     string           `json:"material,omitempty" query:"material"`   // substring, case-insensitive
	Color        string           `json:"color,omitempty" query:"color"`         // substring, case-insensitive
	Warehouse    string           `json:"warehouse,omitempty" query:"warehouse"` // substring, case-insensitive
	Thickness    *decimal.Decimal `json:"thickness,omitempty"`                   // exact thickness
	ThicknessMin *decimal.Decimal `json:"thickness_min,omitempty"`               // inclusive lower bound
	ThicknessMax *decimal.Decimal `json:"thickness_max,omitempty"`               // inclusive upper bound
}

// PlasticRow is a warehouse_plastics row as scanned from the database.
type PlasticRow struct {
	ID           int64
	Article      pgtype.Text
	Material     pgtype.Text
	Thickness    decimal.NullDecimal
	Color        pgtype.Text
	Length       decimal.NullDecimal
	Width        decimal.NullDecimal
	Warehouse    pgtype.Text
	Comment      pgtype.Text
	EmployeeID   pgtype.Int8
	EmployeeName pgtype.Text
	ArrivalDate  pgtype.Date
	ArrivalAt    pgtype.Timestamptz
}

// Plastic is the normalized, externally visible shape of a warehouse_plastics row.
// A nil field is a missing value and encodes as JSON null.
type Plastic struct {
	ID           int64    `json:"id"`
	Article      *string  `json:"article"`
	Material     *string  `json:"material"`
	Thickness    *float64 `json:"thickness"`
	Color        *string  `json:"color"`
	Length       *float64 `json:"length"`
	Width        *float64 `json:"width"`
	Warehouse    *string  `json:"warehouse"`
	Comment      *string  `json:"comment"`
	EmployeeID   *int64   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name"`
	ArrivalDate  *string  `json:"arrival_date"`
	ArrivalAt    *string  `json:"arrival_at"`
}

// NewPlastic is an arrival registered through the bot.
type NewPlastic struct {
	Article      string
	Material     *string
	Thickness    *decimal.Decimal
	Color        *string
	Length       *decimal.Decimal
	Width        *decimal.Decimal
	Warehouse    *string
	Comment      *string
	EmployeeID   *int64
	EmployeeName *string
	ArrivalAt    time.Time
}
