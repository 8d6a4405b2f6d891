package repositories

import (
	"context"
	"fmt"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/models"
)

type CatalogRepository interface {
	ListMaterials(ctx context.Context) ([]*models.MaterialType, error)
}

type catalogRepo struct {
	db Database
}

func NewCatalogRepo(db Database) CatalogRepository {
	return &catalogRepo{db: db}
}

// ListMaterials returns every material type with its thicknesses and colors, ordered by name.
func (r *catalogRepo) ListMaterials(ctx context.Context) ([]*models.MaterialType, error) {
	if !available(r.db) {
		return nil, fmt.Errorf("list materials: %w", common.ErrServiceUnavailable)
	}

	query := `
		SELECT t.id, t.name, t.created_at,
			COALESCE((SELECT array_agg(th.thickness::float8 ORDER BY th.thickness)
				FROM plastic_material_thicknesses th WHERE th.material_id = t.id), '{}') AS thicknesses,
			COALESCE((SELECT array_agg(c.color ORDER BY LOWER(c.color))
				FROM plastic_material_colors c WHERE c.material_id = t.id), '{}') AS colors
		FROM plastic_material_types t
		ORDER BY t.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, common.ClassifyDBError("list materials", err)
	}
	defer rows.Close()

	materials := make([]*models.MaterialType, 0)
	for rows.Next() {
		m := &models.MaterialType{}
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.Thicknesses, &m.Colors); err != nil {
			return nil, &common.QueryError{Op: "scan material", Err: err}
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ClassifyDBError("list materials", err)
	}
	return materials, nil
}
