package domain

import (
	"context"
	"time"
)

// Cover letter bounds, in characters.
const (
	CoverLetterMinLength = 100
	CoverLetterMaxLength = 2000
)

// Application represents a job application from a candidate
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	ResumeURL   string    `json:"resume_url"`
	CoverLetter string    `json:"cover_letter"`
	TrelloName  string    `json:"trello_name"` // board placement, see ColumnAllApplications
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	CandidateName  *string `json:"candidate_name,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
}

// BoardColumn is one bucket of a job's board, protected or stored.
type BoardColumn struct {
	ColumnID     *int64        `json:"column_id,omitempty"`
	Name         string        `json:"name"`
	Protected    bool          `json:"protected"`
	Applications []Application `json:"applications"`
}

type Board struct {
	JobID   int64         `json:"job_id"`
	Columns []BoardColumn `json:"columns"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create returns ErrDuplicate when the candidate already applied to the job.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, candidateID string) (bool, error)
	UpdateTrelloName(ctx context.Context, id int64, name string) error
	// ReassignColumn moves every application of jobID placed in from to to.
	ReassignColumn(ctx context.Context, jobID int64, from, to string) (int64, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	Submit(ctx context.Context, candidate Candidate, jobID int64, resumeURL, coverLetter string) (*Application, error)
	ListMine(ctx context.Context, candidate Candidate) ([]Application, error)

	// Employer operations
	ListByJob(ctx context.Context, employer Employer, jobID int64) ([]Application, error)
	Move(ctx context.Context, employer Employer, applicationID int64, target string) (*Application, error)
	GetBoard(ctx context.Context, employer Employer, jobID int64) (*Board, error)
	ExportBoard(ctx context.Context, employer Employer, jobID int64) ([]byte, string, error)
}
