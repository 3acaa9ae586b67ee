package postgres

import (
	"context"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(full_name, ''), role, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}
