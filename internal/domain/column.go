package domain

import (
	"context"
	"strings"
	"time"
)

// Protected board buckets. Every (employer, job) board has both of them
// without a stored Column record.
const (
	ColumnAllApplications = "All Applications"
	ColumnShortlisted     = "Shortlisted"
)

// ProtectedColumns lists the implicit buckets in board order.
func ProtectedColumns() []string {
	return []string{ColumnAllApplications, ColumnShortlisted}
}

func IsProtectedColumn(name string) bool {
	name = NormalizeColumnName(name)
	return name == ColumnAllApplications || name == ColumnShortlisted
}

func NormalizeColumnName(name string) string {
	return strings.TrimSpace(name)
}

// Column is an employer-defined triage bucket for the applications of one job.
type Column struct {
	ID         int64     `json:"id"`
	EmployerID string    `json:"employer_id"`
	JobID      int64     `json:"job_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ColumnRepository interface {
	Create(ctx context.Context, column *Column) error
	// GetForEmployer and FindByName lock the row (for update and for share
	// respectively) when called inside a transaction.
	GetForEmployer(ctx context.Context, id int64, employerID string) (*Column, error)
	FindByName(ctx context.Context, employerID string, jobID int64, name string) (*Column, error)
	// ExistsByName ignores the column with excludeID (0 to disable).
	ExistsByName(ctx context.Context, employerID string, jobID int64, name string, excludeID int64) (bool, error)
	List(ctx context.Context, employerID string, jobID *int64) ([]Column, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type ColumnUsecase interface {
	CreateColumn(ctx context.Context, employer Employer, jobID int64, name string) (*Column, error)
	ListColumns(ctx context.Context, employer Employer, jobID *int64) ([]Column, error)
	RenameColumn(ctx context.Context, employer Employer, columnID, jobID int64, newName string) (*Column, error)
	DeleteColumn(ctx context.Context, employer Employer, columnID int64) error
}
