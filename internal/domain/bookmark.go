package domain

import (
	"context"
	"time"
)

type Bookmark struct {
	ID          int64     `json:"id"`
	CandidateID string    `json:"candidate_id"`
	JobID       int64     `json:"job_id"`
	CreatedAt   time.Time `json:"created_at"`

	JobTitle *string `json:"job_title,omitempty"`
}

type BookmarkRepository interface {
	// Create returns ErrDuplicate when the job is already bookmarked.
	Create(ctx context.Context, b *Bookmark) error
	Exists(ctx context.Context, candidateID string, jobID int64) (bool, error)
	Delete(ctx context.Context, candidateID string, jobID int64) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Bookmark, error)
}

type BookmarkUsecase interface {
	Add(ctx context.Context, candidate Candidate, jobID int64) (*Bookmark, error)
	Remove(ctx context.Context, candidate Candidate, jobID int64) error
	ListMine(ctx context.Context, candidate Candidate) ([]Bookmark, error)
}
