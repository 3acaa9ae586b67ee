package postgres

import (
	"context"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type columnRepo struct {
	db *pgxpool.Pool
}

func NewColumnRepository(db *pgxpool.Pool) domain.ColumnRepository {
	return &columnRepo{db: db}
}

func (r *columnRepo) Create(ctx context.Context, column *domain.Column) error {
	query := `INSERT INTO board_columns (employer_id, job_id, name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	now := time.Now()
	column.CreatedAt = now
	column.UpdatedAt = now

	err := conn(ctx, r.db).QueryRow(ctx, query,
		column.EmployerID, column.JobID, column.Name, column.CreatedAt, column.UpdatedAt,
	).Scan(&column.ID)
	return mapErr(err)
}

func (r *columnRepo) GetForEmployer(ctx context.Context, id int64, employerID string) (*domain.Column, error) {
	query := `SELECT id, employer_id, job_id, name, created_at, updated_at
	          FROM board_columns WHERE id = $1 AND employer_id = $2`
	if inTx(ctx) {
		query += ` FOR UPDATE`
	}
	return r.getOne(ctx, query, id, employerID)
}

func (r *columnRepo) FindByName(ctx context.Context, employerID string, jobID int64, name string) (*domain.Column, error) {
	query := `SELECT id, employer_id, job_id, name, created_at, updated_at
	          FROM board_columns WHERE employer_id = $1 AND job_id = $2 AND name = $3`
	if inTx(ctx) {
		query += ` FOR SHARE`
	}
	return r.getOne(ctx, query, employerID, jobID, name)
}

func (r *columnRepo) getOne(ctx context.Context, query string, args ...any) (*domain.Column, error) {
	var c domain.Column
	err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.EmployerID, &c.JobID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *columnRepo) ExistsByName(ctx context.Context, employerID string, jobID int64, name string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(
	              SELECT 1 FROM board_columns
	              WHERE employer_id = $1 AND job_id = $2 AND name = $3 AND id <> $4)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query, employerID, jobID, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *columnRepo) List(ctx context.Context, employerID string, jobID *int64) ([]domain.Column, error) {
	query := `SELECT id, employer_id, job_id, name, created_at, updated_at
	          FROM board_columns
	          WHERE employer_id = $1 AND ($2::bigint IS NULL OR job_id = $2)
	          ORDER BY created_at DESC, id DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, employerID, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []domain.Column{}
	for rows.Next() {
		var c domain.Column
		if err := rows.Scan(&c.ID, &c.EmployerID, &c.JobID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (r *columnRepo) Rename(ctx context.Context, id int64, name string) error {
	query := `UPDATE board_columns SET name = $2, updated_at = $3 WHERE id = $1`
	result, err := conn(ctx, r.db).Exec(ctx, query, id, name, time.Now())
	if err != nil {
		return mapErr(err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *columnRepo) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM board_columns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
