package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
)

type columnUsecase struct {
	tx              domain.Transactor
	columnRepo      domain.ColumnRepository
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

// NewColumnUsecase creates the board column manager
func NewColumnUsecase(
	tx domain.Transactor,
	columnRepo domain.ColumnRepository,
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
) domain.ColumnUsecase {
	return &columnUsecase{
		tx:              tx,
		columnRepo:      columnRepo,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
	}
}

// CreateColumn adds a named bucket to the employer's board for one job
func (uc *columnUsecase) CreateColumn(ctx context.Context, employer domain.Employer, jobID int64, name string) (*domain.Column, error) {
	// 1. Validate name
	name = domain.NormalizeColumnName(name)
	if name == "" {
		return nil, apperror.BadRequest("Column name is required")
	}
	if domain.IsProtectedColumn(name) {
		return nil, apperror.Conflict(fmt.Sprintf("'%s' is a reserved column name", name))
	}

	// 2. Validate employer owns the job
	if _, err := ownedJob(ctx, uc.jobRepo, employer, jobID); err != nil {
		return nil, err
	}

	// 3. Check for duplicate name in this board
	exists, err := uc.columnRepo.ExistsByName(ctx, employer.ID, jobID, name, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, duplicateColumn(name)
	}

	// 4. Create column
	column := &domain.Column{
		EmployerID: employer.ID,
		JobID:      jobID,
		Name:       name,
	}
	if err := uc.columnRepo.Create(ctx, column); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicateColumn(name)
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Board column created", "column_id", column.ID, "job_id", jobID)
	return column, nil
}

// ListColumns returns the employer's stored columns, newest first
func (uc *columnUsecase) ListColumns(ctx context.Context, employer domain.Employer, jobID *int64) ([]domain.Column, error) {
	columns, err := uc.columnRepo.List(ctx, employer.ID, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return columns, nil
}

// RenameColumn renames a column and moves its applications along with it
func (uc *columnUsecase) RenameColumn(ctx context.Context, employer domain.Employer, columnID, jobID int64, newName string) (*domain.Column, error) {
	newName = domain.NormalizeColumnName(newName)
	if newName == "" {
		return nil, apperror.BadRequest("Column name is required")
	}

	var renamed *domain.Column
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Lock the column so concurrent renames of it serialize
		column, err := uc.columnRepo.GetForEmployer(ctx, columnID, employer.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Column not found")
			}
			return apperror.Internal(err)
		}
		if column.JobID != jobID {
			return apperror.NotFound("Column not found")
		}

		// 2. Same name is a no-op
		if column.Name == newName {
			renamed = column
			return nil
		}

		// 3. Validate new name
		if domain.IsProtectedColumn(newName) {
			return apperror.Conflict(fmt.Sprintf("'%s' is a reserved column name", newName))
		}
		exists, err := uc.columnRepo.ExistsByName(ctx, employer.ID, jobID, newName, column.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if exists {
			return duplicateColumn(newName)
		}

		// 4. Cascade to applications, then rename the column itself
		moved, err := uc.applicationRepo.ReassignColumn(ctx, jobID, column.Name, newName)
		if err != nil {
			return apperror.Internal(err)
		}
		if err := uc.columnRepo.Rename(ctx, column.ID, newName); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return duplicateColumn(newName)
			}
			return apperror.Internal(err)
		}

		logger.Log.Info("Board column renamed",
			"column_id", column.ID, "job_id", jobID, "applications_moved", moved)
		column.Name = newName
		renamed = column
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

// DeleteColumn removes a column and returns its applications to All Applications
func (uc *columnUsecase) DeleteColumn(ctx context.Context, employer domain.Employer, columnID int64) error {
	return uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		column, err := uc.columnRepo.GetForEmployer(ctx, columnID, employer.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Column not found")
			}
			return apperror.Internal(err)
		}

		moved, err := uc.applicationRepo.ReassignColumn(ctx, column.JobID, column.Name, domain.ColumnAllApplications)
		if err != nil {
			return apperror.Internal(err)
		}
		if err := uc.columnRepo.Delete(ctx, column.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.NotFound("Column not found")
			}
			return apperror.Internal(err)
		}

		logger.Log.Info("Board column deleted",
			"column_id", column.ID, "job_id", column.JobID, "applications_moved", moved)
		return nil
	})
}

func duplicateColumn(name string) error {
	return apperror.Conflict(fmt.Sprintf("A column named '%s' already exists for this job", name))
}

// ownedJob loads a job and hides it from employers who do not own it.
func ownedJob(ctx context.Context, jobRepo domain.JobRepository, employer domain.Employer, jobID int64) (*domain.Job, error) {
	job, err := jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != employer.ID {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}
