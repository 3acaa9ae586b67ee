package postgres

import (
	"context"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type pushTokenRepo struct {
	db *pgxpool.Pool
}

func NewPushTokenRepository(db *pgxpool.Pool) domain.PushTokenRepository {
	return &pushTokenRepo{db: db}
}

// Upsert moves a device token to the latest user that registered it.
func (r *pushTokenRepo) Upsert(ctx context.Context, token *domain.PushToken) error {
	query := `INSERT INTO push_tokens (user_id, token, platform, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $4)
	          ON CONFLICT (token) DO UPDATE
	          SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at, updated_at`

	return conn(ctx, r.db).QueryRow(ctx, query, token.UserID, token.Token, token.Platform, time.Now()).
		Scan(&token.ID, &token.CreatedAt, &token.UpdatedAt)
}

func (r *pushTokenRepo) ListByUser(ctx context.Context, userID string) ([]domain.PushToken, error) {
	query := `SELECT id, user_id, token, platform, created_at, updated_at
	          FROM push_tokens WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.PushToken
	for rows.Next() {
		var t domain.PushToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *pushTokenRepo) Delete(ctx context.Context, userID, token string) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM push_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteTokens drops tokens the push transport reported as dead.
func (r *pushTokenRepo) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM push_tokens WHERE token = ANY($1)`, pq.Array(tokens))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
