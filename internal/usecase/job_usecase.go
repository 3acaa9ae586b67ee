package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/sakibmtatva/online-job-portal-be/pkg/validation"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	notifier domain.NotificationUsecase
	validate *validator.Validate
	clock    Clock
}

func NewJobUsecase(jobRepo domain.JobRepository, notifier domain.NotificationUsecase, clock Clock) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		notifier: notifier,
		validate: newValidator(),
		clock:    clock,
	}
}

// newValidator mirrors the rules gin applies to bound request bodies.
func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	validation.RegisterValidators(v)
	return v
}

func (u *jobUsecase) CreateJob(ctx context.Context, employer domain.Employer, input domain.JobInput) (*domain.Job, error) {
	closing, err := u.checkInput(input)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{EmployerID: employer.ID, Status: domain.JobStatusActive}
	applyJobInput(job, input, closing)
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Job created", "job_id", job.ID, "employer_id", employer.ID)
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, employer domain.Employer, page, pageSize int) (*domain.PaginatedResult[domain.Job], error) {
	page, pageSize = domain.NormalizePage(page, pageSize)
	jobs, total, err := u.jobRepo.ListByEmployer(ctx, employer.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(jobs, total, page, pageSize), nil
}

// UpdateJob edits a posting that is still open and tells its applicants
func (u *jobUsecase) UpdateJob(ctx context.Context, employer domain.Employer, id int64, input domain.JobInput) (*domain.Job, error) {
	// 1. Ownership and expiry
	job, err := ownedJob(ctx, u.jobRepo, employer, id)
	if err != nil {
		return nil, err
	}
	if err := u.rejectExpired(ctx, job, "Cannot edit an expired job"); err != nil {
		return nil, err
	}

	// 2. Validate input
	closing, err := u.checkInput(input)
	if err != nil {
		return nil, err
	}

	// 3. Persist
	applyJobInput(job, input, closing)
	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Conflict("Cannot edit an expired job")
		}
		return nil, apperror.Internal(err)
	}

	// 4. Notify applicants
	for _, candidateID := range job.ApplicantIDs {
		notifyQuietly(ctx, u.notifier, domain.NewNotification{
			RecipientID: candidateID,
			Message:     fmt.Sprintf("The job '%s' you applied to has been updated.", job.Title),
			Category:    domain.CategoryJob,
			Payload: map[string]interface{}{
				"type":  domain.PayloadFromEmployer,
				"id":    employer.ID,
				"jobId": job.ID,
			},
		})
	}

	logger.Log.Info("Job updated", "job_id", job.ID, "applicants_notified", len(job.ApplicantIDs))
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, employer domain.Employer, id int64) error {
	job, err := ownedJob(ctx, u.jobRepo, employer, id)
	if err != nil {
		return err
	}
	if err := u.rejectExpired(ctx, job, "Cannot delete an expired job"); err != nil {
		return err
	}

	if err := u.jobRepo.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.Conflict("Cannot delete an expired job")
		}
		return apperror.Internal(err)
	}
	logger.Log.Info("Job deleted", "job_id", job.ID)
	return nil
}

// ExpireElapsedJobs marks every Active job past its closing date as Expired.
// A failure on one job is logged and the sweep moves on.
func (u *jobUsecase) ExpireElapsedJobs(ctx context.Context) (int, error) {
	ids, err := u.jobRepo.ListLapsedIDs(ctx, u.clock.today())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		changed, err := u.jobRepo.MarkExpired(ctx, id)
		if err != nil {
			logger.Log.Error("failed to expire job", "job_id", id, "error", err)
			continue
		}
		if changed {
			expired++
		}
	}
	if expired > 0 {
		logger.Log.Info("Expired lapsed jobs", "count", expired)
	}
	return expired, nil
}

// rejectExpired refuses changes to a closed job. A job whose closing date
// passed before the sweep ran is flipped here first.
func (u *jobUsecase) rejectExpired(ctx context.Context, job *domain.Job, message string) error {
	if !job.IsExpired(u.clock.today()) {
		return nil
	}
	if job.Status != domain.JobStatusExpired {
		if _, err := u.jobRepo.MarkExpired(ctx, job.ID); err != nil {
			return apperror.Internal(err)
		}
		job.Status = domain.JobStatusExpired
	}
	return apperror.Conflict(message)
}

func (u *jobUsecase) checkInput(input domain.JobInput) (time.Time, error) {
	if err := u.validate.Struct(input); err != nil {
		return time.Time{}, apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	closing, err := time.ParseInLocation(domain.DateLayout, input.ClosingDate, u.clock.location())
	if err != nil {
		return time.Time{}, apperror.BadRequest("Closing date must be a valid date (YYYY-MM-DD)")
	}
	if input.ClosingDate < u.clock.today() {
		return time.Time{}, apperror.BadRequest("Closing date cannot be in the past")
	}
	return closing, nil
}

func applyJobInput(job *domain.Job, input domain.JobInput, closing time.Time) {
	job.Title = strings.TrimSpace(input.Title)
	job.Description = input.Description
	job.Location = input.Location
	job.JobType = input.JobType
	job.ExperienceLevel = input.ExperienceLevel
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	job.ClosingDate = closing
}
