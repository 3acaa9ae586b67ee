package domain

import (
	"context"
	"time"
)

// Job status constants
const (
	JobStatusActive  = "Active"
	JobStatusExpired = "Expired"
)

// DateLayout is the calendar-day format used for closing dates and meeting dates.
const DateLayout = "2006-01-02"

type Job struct {
	ID              int64     `json:"id"`
	EmployerID      string    `json:"employer_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	JobType         *string   `json:"job_type,omitempty"`
	ExperienceLevel *string   `json:"experience_level,omitempty"`
	SalaryMin       float64   `json:"salary_min"`
	SalaryMax       float64   `json:"salary_max"`
	ClosingDate     time.Time `json:"closing_date"`
	Status          string    `json:"status"`
	ApplicantIDs    []string  `json:"applicant_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClosingDay returns the closing date as a YYYY-MM-DD string.
func (j *Job) ClosingDay() string {
	return j.ClosingDate.Format(DateLayout)
}

// HasLapsed reports whether the closing date is strictly before today.
// today must be a YYYY-MM-DD string in the service's time zone.
func (j *Job) HasLapsed(today string) bool {
	return j.ClosingDay() < today
}

// IsExpired is true when the job is already marked Expired or its closing
// date has passed and the sweep has not caught up yet.
func (j *Job) IsExpired(today string) bool {
	return j.Status == JobStatusExpired || j.HasLapsed(today)
}

func (j *Job) HasApplicant(candidateID string) bool {
	for _, id := range j.ApplicantIDs {
		if id == candidateID {
			return true
		}
	}
	return false
}

// JobInput carries the employer-editable fields of a posting.
type JobInput struct {
	Title           string  `json:"title" binding:"required,min=3,max=200"`
	Description     string  `json:"description" binding:"required,min=10"`
	Location        string  `json:"location" binding:"required"`
	JobType         *string `json:"job_type"`
	ExperienceLevel *string `json:"experience_level"`
	SalaryMin       float64 `json:"salary_min" binding:"gte=0"`
	SalaryMax       float64 `json:"salary_max" binding:"gtefield=SalaryMin"`
	ClosingDate     string  `json:"closing_date" binding:"required,calendar_date"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]Job, int64, error)
	// Update and Delete only touch jobs that are not Expired; ErrNotFound otherwise.
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
	// AddApplicant locks the job row and returns ErrNotFound if the job is
	// missing or already Expired.
	AddApplicant(ctx context.Context, jobID int64, candidateID string) error
	MarkExpired(ctx context.Context, id int64) (bool, error)
	ListLapsedIDs(ctx context.Context, today string) ([]int64, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, employer Employer, input JobInput) (*Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListMyJobs(ctx context.Context, employer Employer, page, pageSize int) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, employer Employer, id int64, input JobInput) (*Job, error)
	DeleteJob(ctx context.Context, employer Employer, id int64) error
	ExpireElapsedJobs(ctx context.Context) (int, error)
}
