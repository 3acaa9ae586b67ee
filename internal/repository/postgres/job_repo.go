package postgres

import (
	"context"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, employer_id, title, description, location, job_type, experience_level,
	salary_min, salary_max, closing_date, status, applicant_ids, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
		&job.SalaryMin, &job.SalaryMax, &job.ClosingDate, &job.Status, pq.Array(&job.ApplicantIDs),
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (employer_id, title, description, location, job_type, experience_level,
	              salary_min, salary_max, closing_date, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}

	return conn(ctx, r.db).QueryRow(ctx, query,
		job.EmployerID, job.Title, job.Description, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.ClosingDay(), job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return job, nil
}

func (r *jobRepo) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	q := conn(ctx, r.db)
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE employer_id = $1`, employerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, description = $3, location = $4, job_type = $5, experience_level = $6,
	              salary_min = $7, salary_max = $8, closing_date = $9, updated_at = $10
	          WHERE id = $1 AND status <> $11`

	job.UpdatedAt = time.Now()
	result, err := conn(ctx, r.db).Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.ClosingDay(), job.UpdatedAt, domain.JobStatusExpired,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND status <> $2`, id, domain.JobStatusExpired)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddApplicant appends candidateID to the applicant set once.
func (r *jobRepo) AddApplicant(ctx context.Context, jobID int64, candidateID string) error {
	query := `UPDATE jobs
	          SET applicant_ids = CASE WHEN $2 = ANY(applicant_ids) THEN applicant_ids
	                                   ELSE array_append(applicant_ids, $2) END,
	              updated_at = NOW()
	          WHERE id = $1 AND status <> $3`
	result, err := conn(ctx, r.db).Exec(ctx, query, jobID, candidateID, domain.JobStatusExpired)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) MarkExpired(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1 AND status <> $2`
	result, err := conn(ctx, r.db).Exec(ctx, query, id, domain.JobStatusExpired)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// ListLapsedIDs returns non-expired jobs whose closing date is before today.
func (r *jobRepo) ListLapsedIDs(ctx context.Context, today string) ([]int64, error) {
	query := `SELECT id FROM jobs WHERE status <> $1 AND closing_date < $2::date ORDER BY id`
	rows, err := conn(ctx, r.db).Query(ctx, query, domain.JobStatusExpired, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
