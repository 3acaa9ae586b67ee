package postgres

import (
	"context"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, candidate_id, resume_url, cover_letter, trello_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.TrelloName == "" {
		app.TrelloName = domain.ColumnAllApplications
	}

	err := conn(ctx, r.db).QueryRow(ctx, query,
		app.JobID,
		app.CandidateID,
		app.ResumeURL,
		app.CoverLetter,
		app.TrelloName,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
	return mapErr(err)
}

// GetByID retrieves an application by ID with joined candidate data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.trello_name,
			a.created_at, a.updated_at,
			COALESCE(NULLIF(u.full_name, ''), u.email) AS candidate_name,
			u.email AS candidate_email,
			j.title AS job_title
		FROM applications a
		LEFT JOIN users u ON a.candidate_id = u.id
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1`

	var app domain.Application
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter, &app.TrelloName,
		&app.CreatedAt, &app.UpdatedAt,
		&app.CandidateName, &app.CandidateEmail, &app.JobTitle,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &app, nil
}

// ListByJob retrieves all applications for a job with joined candidate data
func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.trello_name,
			a.created_at, a.updated_at,
			COALESCE(NULLIF(u.full_name, ''), u.email) AS candidate_name,
			u.email AS candidate_email
		FROM applications a
		LEFT JOIN users u ON a.candidate_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter, &app.TrelloName,
			&app.CreatedAt, &app.UpdatedAt,
			&app.CandidateName, &app.CandidateEmail,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// ListByCandidate retrieves a candidate's applications with job titles
func (r *applicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.trello_name,
			a.created_at, a.updated_at,
			j.title AS job_title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.candidate_id = $1
		ORDER BY a.created_at DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter, &app.TrelloName,
			&app.CreatedAt, &app.UpdatedAt,
			&app.JobTitle,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/candidate combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, candidateID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query, jobID, candidateID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateTrelloName(ctx context.Context, id int64, name string) error {
	query := `UPDATE applications SET trello_name = $2, updated_at = $3 WHERE id = $1`
	result, err := conn(ctx, r.db).Exec(ctx, query, id, name, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReassignColumn is the column cascade: one filter-and-set over the job's applications.
func (r *applicationRepo) ReassignColumn(ctx context.Context, jobID int64, from, to string) (int64, error) {
	query := `UPDATE applications SET trello_name = $3, updated_at = $4 WHERE job_id = $1 AND trello_name = $2`
	result, err := conn(ctx, r.db).Exec(ctx, query, jobID, from, to, time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
