package query

import "plastwarehouse/internal/models"

// Compile maps a search filter to a predicate. Text criteria become ILIKE
// "%v%" matches and numeric criteria compare thickness. Exact and range
// bounds are not checked against each other: exact=5 with min=10 compiles
// to a predicate that matches nothing.
func Compile(f models.PlasticSearchFilter) Compiled {
	var b Builder
	b.Contains(ColArticle, f.Article).
		Contains(ColMaterial, f.Material).
		Contains(ColColor, f.Color).
		Contains(ColWarehouse, f.Warehouse)

	if f.Thickness != nil {
		b.Add(ColThickness, OpEq, *f.Thickness)
	}
	if f.ThicknessMin != nil {
		b.Add(ColThickness, OpGte, *f.ThicknessMin)
	}
	if f.ThicknessMax != nil {
		b.Add(ColThickness, OpLte, *f.ThicknessMax)
	}
	return b.Build()
}
