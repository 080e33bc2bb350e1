package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UserRepo records the provider-issued ids of users who own recipes.
type UserRepo interface {
	// Ensure inserts the user id if it is not already present.
	Ensure(ctx context.Context, id string) error
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Ensure(ctx context.Context, id string) error {
	const q = `INSERT INTO users (id) VALUES (@id) ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.UserRepo.Ensure: %w", err)
	}
	return nil
}
