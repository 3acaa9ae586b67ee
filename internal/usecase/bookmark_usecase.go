package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
)

type bookmarkUsecase struct {
	bookmarkRepo domain.BookmarkRepository
	jobRepo      domain.JobRepository
	userRepo     domain.UserRepository
	notifier     domain.NotificationUsecase
}

func NewBookmarkUsecase(
	bookmarkRepo domain.BookmarkRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	notifier domain.NotificationUsecase,
) domain.BookmarkUsecase {
	return &bookmarkUsecase{
		bookmarkRepo: bookmarkRepo,
		jobRepo:      jobRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (u *bookmarkUsecase) Add(ctx context.Context, candidate domain.Candidate, jobID int64) (*domain.Bookmark, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	bookmark := &domain.Bookmark{CandidateID: candidate.ID, JobID: jobID}
	if err := u.bookmarkRepo.Create(ctx, bookmark); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Job is already bookmarked")
		}
		return nil, apperror.Internal(err)
	}
	bookmark.JobTitle = &job.Title

	name := "A candidate"
	if user, err := u.userRepo.GetByID(ctx, candidate.ID); err == nil {
		name = user.DisplayName()
	}
	notifyQuietly(ctx, u.notifier, domain.NewNotification{
		RecipientID: job.EmployerID,
		Message:     fmt.Sprintf("%s has bookmarked your job '%s'", name, job.Title),
		Category:    domain.CategoryBookmark,
		Payload: map[string]interface{}{
			"type":  domain.PayloadFromCandidate,
			"id":    candidate.ID,
			"jobId": job.ID,
		},
	})
	return bookmark, nil
}

func (u *bookmarkUsecase) Remove(ctx context.Context, candidate domain.Candidate, jobID int64) error {
	if err := u.bookmarkRepo.Delete(ctx, candidate.ID, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Bookmark not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *bookmarkUsecase) ListMine(ctx context.Context, candidate domain.Candidate) ([]domain.Bookmark, error) {
	items, err := u.bookmarkRepo.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}
