package repositories

import (
	"context"
	"fmt"
	"iter"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// FetchLimit caps every plastics listing. There is no pagination.
const FetchLimit = 100

// PlasticColumns is the fixed projection of warehouse_plastics listings.
const PlasticColumns = "id, article, material, thickness, color, length, width, warehouse, " +
	"comment, employee_id, employee_name, arrival_date, arrival_at"

// Newest arrival first, rows without arrival_at last, id breaks ties.
// id is unique, so the order is total.
const plasticsOrder = " ORDER BY arrival_at DESC NULLS LAST, id DESC"

type PlasticsRepository interface {
	Fetch(ctx context.Context, filter query.Compiled) ([]*models.PlasticRow, error)
	Stream(ctx context.Context, filter query.Compiled) iter.Seq2[*models.PlasticRow, error]
	Insert(ctx context.Context, plastic *models.NewPlastic) (int64, error)
}

type plasticsRepo struct {
	db Database
}

func NewPlasticsRepo(db Database) PlasticsRepository {
	return &plasticsRepo{db: db}
}

// SelectPlasticsSQL renders the listing query for a compiled filter.
func SelectPlasticsSQL(filter query.Compiled) string {
	return "SELECT " + PlasticColumns + " FROM warehouse_plastics" + filter.Where() +
		plasticsOrder + fmt.Sprintf(" LIMIT %d", FetchLimit)
}

// Fetch runs the listing and collects every row. Zero matches is an empty
// slice and a nil error.
func (r *plasticsRepo) Fetch(ctx context.Context, filter query.Compiled) ([]*models.PlasticRow, error) {
	plastics := make([]*models.PlasticRow, 0)
	for row, err := range r.Stream(ctx, filter) {
		if err != nil {
			return nil, err
		}
		plastics = append(plastics, row)
	}
	return plastics, nil
}

// Stream runs the listing lazily on first pull. The sequence can be ranged
// over once; breaking out early closes the rows and releases the connection.
func (r *plasticsRepo) Stream(ctx context.Context, filter query.Compiled) iter.Seq2[*models.PlasticRow, error] {
	return func(yield func(*models.PlasticRow, error) bool) {
		if !available(r.db) {
			yield(nil, fmt.Errorf("fetch plastics: %w", common.ErrServiceUnavailable))
			return
		}

		rows, err := r.db.Query(ctx, SelectPlasticsSQL(filter), filter.Args...)
		if err != nil {
			yield(nil, common.ClassifyDBError("fetch plastics", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			plastic, err := scanPlastic(rows)
			if err != nil {
				yield(nil, &common.QueryError{Op: "scan plastic", Err: err})
				return
			}
			if !yield(plastic, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, common.ClassifyDBError("fetch plastics", err))
		}
	}
}

func scanPlastic(rows pgx.Rows) (*models.PlasticRow, error) {
	p := &models.PlasticRow{}
	err := rows.Scan(
		&p.ID, &p.Article, &p.Material, &p.Thickness, &p.Color, &p.Length, &p.Width,
		&p.Warehouse, &p.Comment, &p.EmployeeID, &p.EmployeeName, &p.ArrivalDate, &p.ArrivalAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Insert stores a new arrival and returns its id. Values are only coerced
// to column types; no business rules apply.
func (r *plasticsRepo) Insert(ctx context.Context, plastic *models.NewPlastic) (int64, error) {
	if !available(r.db) {
		return 0, fmt.Errorf("insert plastic: %w", common.ErrServiceUnavailable)
	}

	insertSQL := `
		INSERT INTO warehouse_plastics (article, material, thickness, color, length, width, warehouse,
			comment, employee_id, employee_name, arrival_date, arrival_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	arrivalDate := pgtype.Date{Time: plastic.ArrivalAt, Valid: !plastic.ArrivalAt.IsZero()}
	arrivalAt := pgtype.Timestamptz{Time: plastic.ArrivalAt, Valid: !plastic.ArrivalAt.IsZero()}

	var id int64
	err := r.db.QueryRow(ctx, insertSQL,
		plastic.Article, plastic.Material, plastic.Thickness, plastic.Color, plastic.Length, plastic.Width,
		plastic.Warehouse, plastic.Comment, plastic.EmployeeID, plastic.EmployeeName, arrivalDate, arrivalAt,
	).Scan(&id)
	if err != nil {
		return 0, common.ClassifyDBError("insert plastic", err)
	}
	return id, nil
}
