package query

import (
	"strings"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/models"

	"github.com/shopspring/decimal"
)

// Parameter names accepted by transports.
const (
	ParamArticle      = "article"
	ParamMaterial     = "material"
	ParamColor        = "color"
	ParamWarehouse    = "warehouse"
	ParamThickness    = "thickness"
	ParamThicknessMin = "thickness_min"
	ParamThicknessMax = "thickness_max"
)

// FilterParams lists every search parameter.
var FilterParams = []string{
	ParamArticle, ParamMaterial, ParamColor, ParamWarehouse,
	ParamThickness, ParamThicknessMin, ParamThicknessMax,
}

// ParseFilter builds search criteria from raw parameter values. get returns
// "" for an absent parameter. Blank numeric values are absent; malformed
// ones fail with common.ErrInvalidCriteria.
func ParseFilter(get func(name string) string) (models.PlasticSearchFilter, error) {
	f := models.PlasticSearchFilter{
		Article:   get(ParamArticle),
		Material:  get(ParamMaterial),
		Color:     get(ParamColor),
		Warehouse: get(ParamWarehouse),
	}

	var err error
	if f.Thickness, err = ParseDecimal(ParamThickness, get(ParamThickness)); err != nil {
		return f, err
	}
	if f.ThicknessMin, err = ParseDecimal(ParamThicknessMin, get(ParamThicknessMin)); err != nil {
		return f, err
	}
	if f.ThicknessMax, err = ParseDecimal(ParamThicknessMax, get(ParamThicknessMax)); err != nil {
		return f, err
	}
	return f, nil
}

// ParseDecimal parses a numeric parameter. A comma is accepted as the
// decimal separator. Blank input returns nil.
func ParseDecimal(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return nil, &common.ParamError{Param: name, Value: raw, Reason: "must be a number"}
	}
	return &d, nil
}
