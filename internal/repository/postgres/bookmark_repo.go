package postgres

import (
	"context"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type bookmarkRepo struct {
	db *pgxpool.Pool
}

func NewBookmarkRepository(db *pgxpool.Pool) domain.BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	b.CreatedAt = time.Now()
	err := conn(ctx, r.db).QueryRow(ctx,
		`INSERT INTO bookmarks (candidate_id, job_id, created_at) VALUES ($1, $2, $3) RETURNING id`,
		b.CandidateID, b.JobID, b.CreatedAt,
	).Scan(&b.ID)
	return mapErr(err)
}

func (r *bookmarkRepo) Exists(ctx context.Context, candidateID string, jobID int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookmarks WHERE candidate_id = $1 AND job_id = $2)`,
		candidateID, jobID,
	).Scan(&exists)
	return exists, err
}

func (r *bookmarkRepo) Delete(ctx context.Context, candidateID string, jobID int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM bookmarks WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookmarkRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Bookmark, error) {
	query := `SELECT b.id, b.candidate_id, b.job_id, b.created_at, j.title
	          FROM bookmarks b LEFT JOIN jobs j ON b.job_id = j.id
	          WHERE b.candidate_id = $1
	          ORDER BY b.created_at DESC`
	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := []domain.Bookmark{}
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.ID, &b.CandidateID, &b.JobID, &b.CreatedAt, &b.JobTitle); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}
