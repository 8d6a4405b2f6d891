package repositories

import (
	"context"
	"fmt"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/models"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *models.BotUser) error
	List(ctx context.Context) ([]*models.BotUser, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

// Upsert registers a bot user, refreshing the username of a known tg_id.
func (r *userRepo) Upsert(ctx context.Context, user *models.BotUser) error {
	if !available(r.db) {
		return fmt.Errorf("upsert user: %w", common.ErrServiceUnavailable)
	}

	query := `
		INSERT INTO users (tg_id, username)
		VALUES ($1, $2)
		ON CONFLICT (tg_id) DO UPDATE SET username = EXCLUDED.username
	`
	if _, err := r.db.Exec(ctx, query, user.TgID, user.Username); err != nil {
		return common.ClassifyDBError("upsert user", err)
	}
	return nil
}

// List returns registered users, newest first.
func (r *userRepo) List(ctx context.Context) ([]*models.BotUser, error) {
	if !available(r.db) {
		return nil, fmt.Errorf("list users: %w", common.ErrServiceUnavailable)
	}

	rows, err := r.db.Query(ctx, `SELECT tg_id, username, position, role FROM users ORDER BY id DESC`)
	if err != nil {
		return nil, common.ClassifyDBError("list users", err)
	}
	defer rows.Close()

	users := make([]*models.BotUser, 0)
	for rows.Next() {
		u := &models.BotUser{}
		if err := rows.Scan(&u.TgID, &u.Username, &u.Position, &u.Role); err != nil {
			return nil, &common.QueryError{Op: "scan user", Err: err}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ClassifyDBError("list users", err)
	}
	return users, nil
}
