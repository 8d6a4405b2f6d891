package normalize

import (
	"fmt"
	"strconv"

	"plastwarehouse/internal/models"
)

// Kind tells renderers how to present a field value.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindDimension
	KindDate
	KindTimestamp
)

// Column describes one output column shared by every renderer.
type Column struct {
	Key   string
	Title string
	Kind  Kind
}

// Columns lists output columns in display order. Keys match the JSON keys of models.Plastic.
var Columns = []Column{
	{Key: "id", Title: "ID", Kind: KindInteger},
	{Key: "article", Title: "Артикул", Kind: KindText},
	{Key: "material", Title: "Материал", Kind: KindText},
	{Key: "thickness", Title: "Толщина", Kind: KindDimension},
	{Key: "color", Title: "Цвет", Kind: KindText},
	{Key: "length", Title: "Длина", Kind: KindDimension},
	{Key: "width", Title: "Ширина", Kind: KindDimension},
	{Key: "warehouse", Title: "Склад", Kind: KindText},
	{Key: "comment", Title: "Комментарий", Kind: KindText},
	{Key: "employee_id", Title: "ID сотрудника", Kind: KindInteger},
	{Key: "employee_name", Title: "Имя сотрудника", Kind: KindText},
	{Key: "arrival_date", Title: "Дата прихода", Kind: KindDate},
	{Key: "arrival_at", Title: "Прибыло", Kind: KindTimestamp},
}

// Field is one value of a normalized record. A nil value is the missing marker.
type Field struct {
	Column
	value any
}

// Missing reports whether the field has no value. Empty strings and zeros are values.
func (f Field) Missing() bool { return f.value == nil }

// Value returns the value (string, int64 or float64), or nil when missing.
func (f Field) Value() any { return f.value }

// Fields expands a record into Columns order. This is the only place where
// a nil pointer of models.Plastic is turned into the missing marker.
func Fields(p models.Plastic) []Field {
	values := []any{
		p.ID,
		opt(p.Article),
		opt(p.Material),
		opt(p.Thickness),
		opt(p.Color),
		opt(p.Length),
		opt(p.Width),
		opt(p.Warehouse),
		opt(p.Comment),
		opt(p.EmployeeID),
		opt(p.EmployeeName),
		opt(p.ArrivalDate),
		opt(p.ArrivalAt),
	}
	fields := make([]Field, len(Columns))
	for i, col := range Columns {
		fields[i] = Field{Column: col, value: values[i]}
	}
	return fields
}

func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Formatter renders fields as text for one output surface.
type Formatter struct {
	Missing   string
	Dimension func(float64) string
}

// Display is used by the HTML table and bot replies.
var Display = Formatter{
	Missing:   "—",
	Dimension: func(v float64) string { return fmt.Sprintf("%.2f мм", v) },
}

// Spreadsheet is used by the export; missing values are blank cells.
var Spreadsheet = Formatter{
	Missing:   "",
	Dimension: func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

func (f Formatter) Format(field Field) string {
	if field.Missing() {
		return f.Missing
	}
	switch v := field.value.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return f.Dimension(v)
	default:
		return fmt.Sprint(v)
	}
}

// Row formats a whole record in Columns order.
func (f Formatter) Row(p models.Plastic) []string {
	fields := Fields(p)
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = f.Format(field)
	}
	return out
}

// Header returns the column titles in Columns order.
func Header() []string {
	out := make([]string, len(Columns))
	for i, col := range Columns {
		out[i] = col.Title
	}
	return out
}
