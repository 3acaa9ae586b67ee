package postgres

import (
	"context"
	"encoding/json"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(n.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (id, user_id, message, type, data, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = conn(ctx, r.db).Exec(ctx, query, n.ID, n.UserID, n.Message, n.Type, string(payload), n.IsRead, n.CreatedAt)
	return mapErr(err)
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int64, error) {
	q := conn(ctx, r.db)
	query := `SELECT id, user_id, message, type, COALESCE(data::text, 'null'), is_read, created_at
	          FROM notifications WHERE user_id = $1
	          ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var payload string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &payload, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(payload), &n.Data); err != nil {
			return nil, 0, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	// is_read is never reset, so a second call still matches and succeeds
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *notificationRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) DeleteAll(ctx context.Context, userID string) (int64, error) {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
