package usecase_test

import (
	"context"
	"testing"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/internal/usecase"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newColumnFixture() (*memStore, domain.ColumnUsecase) {
	s := newMemStore()
	uc := usecase.NewColumnUsecase(s, memColumnRepo{s}, memApplicationRepo{s}, memJobRepo{s})
	return s, uc
}

func TestCreateColumn(t *testing.T) {
	ctx := context.Background()
	employer := domain.Employer{ID: "emp1"}

	t.Run("creates a trimmed column on an owned job", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")

		col, err := uc.CreateColumn(ctx, employer, job.ID, "  Interview  ")
		require.NoError(t, err)
		assert.Equal(t, "Interview", col.Name)
		assert.Equal(t, job.ID, col.JobID)
		assert.Equal(t, "emp1", col.EmployerID)
	})

	t.Run("rejects protected names", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")

		for _, name := range []string{"All Applications", " Shortlisted "} {
			_, err := uc.CreateColumn(ctx, employer, job.ID, name)
			assert.Equal(t, apperror.KindConflict, apperror.KindOf(err), name)
		}
	})

	t.Run("rejects blank names", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")

		_, err := uc.CreateColumn(ctx, employer, job.ID, "   ")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("rejects duplicates on the same board", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")

		_, err := uc.CreateColumn(ctx, employer, job.ID, "Interview")
		require.NoError(t, err)
		_, err = uc.CreateColumn(ctx, employer, job.ID, "Interview")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("same name is allowed on another job", func(t *testing.T) {
		s, uc := newColumnFixture()
		a := s.addJob("emp1", "Backend Engineer", "2025-07-01")
		b := s.addJob("emp1", "Frontend Engineer", "2025-07-01")

		_, err := uc.CreateColumn(ctx, employer, a.ID, "Interview")
		require.NoError(t, err)
		_, err = uc.CreateColumn(ctx, employer, b.ID, "Interview")
		assert.NoError(t, err)
	})

	t.Run("hides jobs owned by someone else", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp2", "Backend Engineer", "2025-07-01")

		_, err := uc.CreateColumn(ctx, employer, job.ID, "Interview")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestRenameColumn(t *testing.T) {
	ctx := context.Background()
	employer := domain.Employer{ID: "emp1"}

	setup := func(t *testing.T) (*memStore, domain.ColumnUsecase, domain.Job, *domain.Column, domain.Application) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")
		col, err := uc.CreateColumn(ctx, employer, job.ID, "Interview")
		require.NoError(t, err)
		app := s.putApp(domain.Application{JobID: job.ID, CandidateID: "cand1", TrelloName: "Interview"})
		return s, uc, job, col, app
	}

	t.Run("cascades the new name to applications", func(t *testing.T) {
		s, uc, job, col, app := setup(t)
		other := s.putApp(domain.Application{JobID: job.ID, CandidateID: "cand2", TrelloName: domain.ColumnShortlisted})

		renamed, err := uc.RenameColumn(ctx, employer, col.ID, job.ID, "Tech Interview")
		require.NoError(t, err)
		assert.Equal(t, "Tech Interview", renamed.Name)
		assert.Equal(t, "Tech Interview", s.app(app.ID).TrelloName)
		assert.Equal(t, domain.ColumnShortlisted, s.app(other.ID).TrelloName)
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		s, uc, job, col, app := setup(t)

		renamed, err := uc.RenameColumn(ctx, employer, col.ID, job.ID, "Interview")
		require.NoError(t, err)
		assert.Equal(t, "Interview", renamed.Name)
		assert.Equal(t, "Interview", s.app(app.ID).TrelloName)
	})

	t.Run("rejects protected and taken names", func(t *testing.T) {
		_, uc, job, col, _ := setup(t)
		_, err := uc.CreateColumn(ctx, employer, job.ID, "Offer")
		require.NoError(t, err)

		_, err = uc.RenameColumn(ctx, employer, col.ID, job.ID, "Shortlisted")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		_, err = uc.RenameColumn(ctx, employer, col.ID, job.ID, "Offer")
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("column must belong to the given job", func(t *testing.T) {
		s, uc, _, col, _ := setup(t)
		otherJob := s.addJob("emp1", "Frontend Engineer", "2025-07-01")

		_, err := uc.RenameColumn(ctx, employer, col.ID, otherJob.ID, "Tech Interview")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("other employers cannot rename", func(t *testing.T) {
		_, uc, job, col, _ := setup(t)

		_, err := uc.RenameColumn(ctx, domain.Employer{ID: "emp2"}, col.ID, job.ID, "Tech Interview")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("failed rename leaves applications untouched", func(t *testing.T) {
		s, uc, job, col, app := setup(t)
		s.failRename = errBoom

		_, err := uc.RenameColumn(ctx, employer, col.ID, job.ID, "Tech Interview")
		assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
		assert.Equal(t, "Interview", s.app(app.ID).TrelloName)
	})
}

func TestDeleteColumn(t *testing.T) {
	ctx := context.Background()
	employer := domain.Employer{ID: "emp1"}

	t.Run("returns applications to All Applications", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")
		col, err := uc.CreateColumn(ctx, employer, job.ID, "Interview")
		require.NoError(t, err)
		app := s.putApp(domain.Application{JobID: job.ID, CandidateID: "cand1", TrelloName: "Interview"})

		require.NoError(t, uc.DeleteColumn(ctx, employer, col.ID))
		assert.Equal(t, domain.ColumnAllApplications, s.app(app.ID).TrelloName)

		cols, err := uc.ListColumns(ctx, employer, &job.ID)
		require.NoError(t, err)
		assert.Empty(t, cols)
	})

	t.Run("cascade failure keeps the column", func(t *testing.T) {
		s, uc := newColumnFixture()
		job := s.addJob("emp1", "Backend Engineer", "2025-07-01")
		col, err := uc.CreateColumn(ctx, employer, job.ID, "Interview")
		require.NoError(t, err)
		s.failReassign = errBoom

		assert.Error(t, uc.DeleteColumn(ctx, employer, col.ID))
		cols, err := uc.ListColumns(ctx, employer, nil)
		require.NoError(t, err)
		assert.Len(t, cols, 1)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, uc := newColumnFixture()
		err := uc.DeleteColumn(ctx, employer, 999)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

// assertBoardConsistent checks that every application on the job sits in a
// protected bucket or a column that still exists on the same board.
func assertBoardConsistent(t *testing.T, s *memStore, jobID int64) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	live := map[string]bool{}
	for _, c := range s.columns {
		if c.JobID == jobID {
			live[c.Name] = true
		}
	}
	for _, a := range s.apps {
		if a.JobID != jobID {
			continue
		}
		assert.True(t, domain.IsProtectedColumn(a.TrelloName) || live[a.TrelloName],
			"application %d is in unknown column %q", a.ID, a.TrelloName)
	}
}

func TestColumnLifecycleKeepsBoardConsistent(t *testing.T) {
	ctx := context.Background()
	employer := domain.Employer{ID: "emp1"}
	f := newApplicationFixture()
	job := f.store.addJob("emp1", "Backend Engineer", "2025-07-01")
	first := f.store.putApp(domain.Application{JobID: job.ID, CandidateID: "cand1", TrelloName: domain.ColumnAllApplications})
	second := f.store.putApp(domain.Application{JobID: job.ID, CandidateID: "cand2", TrelloName: domain.ColumnAllApplications})

	columnIDs := map[string]int64{}

	steps := []struct {
		name   string
		run    func(t *testing.T)
		first  string
		second string
	}{
		{
			name: "create Interviewing",
			run: func(t *testing.T) {
				col, err := f.columns.CreateColumn(ctx, employer, job.ID, "Interviewing")
				require.NoError(t, err)
				columnIDs["Interviewing"] = col.ID
			},
			first:  domain.ColumnAllApplications,
			second: domain.ColumnAllApplications,
		},
		{
			name: "move first into Interviewing",
			run: func(t *testing.T) {
				_, err := f.uc.Move(ctx, employer, first.ID, "Interviewing")
				require.NoError(t, err)
			},
			first:  "Interviewing",
			second: domain.ColumnAllApplications,
		},
		{
			name: "create Offer and move second there",
			run: func(t *testing.T) {
				col, err := f.columns.CreateColumn(ctx, employer, job.ID, "Offer")
				require.NoError(t, err)
				columnIDs["Offer"] = col.ID
				_, err = f.uc.Move(ctx, employer, second.ID, "Offer")
				require.NoError(t, err)
			},
			first:  "Interviewing",
			second: "Offer",
		},
		{
			name: "rename Interviewing to Phone Screen",
			run: func(t *testing.T) {
				_, err := f.columns.RenameColumn(ctx, employer, columnIDs["Interviewing"], job.ID, "Phone Screen")
				require.NoError(t, err)
			},
			first:  "Phone Screen",
			second: "Offer",
		},
		{
			name: "rename onto a protected name is refused",
			run: func(t *testing.T) {
				_, err := f.columns.RenameColumn(ctx, employer, columnIDs["Offer"], job.ID, domain.ColumnShortlisted)
				assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
			},
			first:  "Phone Screen",
			second: "Offer",
		},
		{
			name: "move second to Shortlisted",
			run: func(t *testing.T) {
				_, err := f.uc.Move(ctx, employer, second.ID, domain.ColumnShortlisted)
				require.NoError(t, err)
			},
			first:  "Phone Screen",
			second: domain.ColumnShortlisted,
		},
		{
			name: "delete Phone Screen",
			run: func(t *testing.T) {
				require.NoError(t, f.columns.DeleteColumn(ctx, employer, columnIDs["Interviewing"]))
			},
			first:  domain.ColumnAllApplications,
			second: domain.ColumnShortlisted,
		},
		{
			name: "delete Offer",
			run: func(t *testing.T) {
				require.NoError(t, f.columns.DeleteColumn(ctx, employer, columnIDs["Offer"]))
			},
			first:  domain.ColumnAllApplications,
			second: domain.ColumnShortlisted,
		},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			step.run(t)
			assert.Equal(t, step.first, f.store.app(first.ID).TrelloName)
			assert.Equal(t, step.second, f.store.app(second.ID).TrelloName)
			assertBoardConsistent(t, f.store, job.ID)
		})
	}
}
