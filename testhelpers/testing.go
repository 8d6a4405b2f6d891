package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"plastwarehouse/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// the tables. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	if err := database.Migrate(connString, zap.NewNop()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	pool, err := database.NewPool(context.Background(), database.PoolOptions{DSN: connString}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	TruncateTables(t, db)
	return db
}

// TruncateTables removes every row and resets identities
func TruncateTables(t *testing.T, db *TestDB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `
		TRUNCATE warehouse_plastics, plastic_material_colors, plastic_material_thicknesses,
			plastic_material_types, users RESTART IDENTITY CASCADE
	`)
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// PlasticSeed is a warehouse_plastics row for test fixtures. Nil fields stay NULL.
type PlasticSeed struct {
	Article   string
	Material  *string
	Thickness *float64
	Color     *string
	Warehouse *string
	ArrivalAt *time.Time
}

// SeedPlastic inserts a plastic and returns its id
func SeedPlastic(t *testing.T, db *TestDB, seed PlasticSeed) int64 {
	t.Helper()

	var arrivalDate *time.Time
	if seed.ArrivalAt != nil {
		d := seed.ArrivalAt.UTC().Truncate(24 * time.Hour)
		arrivalDate = &d
	}

	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO warehouse_plastics (article, material, thickness, color, warehouse, arrival_date, arrival_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, seed.Article, seed.Material, seed.Thickness, seed.Color, seed.Warehouse, arrivalDate, seed.ArrivalAt).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed plastic: %v", err)
	}
	return id
}

// SeedMaterial creates a material type with thicknesses and colors
func SeedMaterial(t *testing.T, db *TestDB, name string, thicknesses []float64, colors []string) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	if err := db.Pool.QueryRow(ctx, `INSERT INTO plastic_material_types (name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
		t.Fatalf("Failed to seed material: %v", err)
	}
	for _, th := range thicknesses {
		if _, err := db.Pool.Exec(ctx, `INSERT INTO plastic_material_thicknesses (material_id, thickness) VALUES ($1, $2)`, id, th); err != nil {
			t.Fatalf("Failed to seed thickness: %v", err)
		}
	}
	for _, c := range colors {
		if _, err := db.Pool.Exec(ctx, `INSERT INTO plastic_material_colors (material_id, color) VALUES ($1, $2)`, id, c); err != nil {
			t.Fatalf("Failed to seed color: %v", err)
		}
	}
	return id
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T { return &v }
