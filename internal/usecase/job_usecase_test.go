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

func validJobInput() domain.JobInput {
	return domain.JobInput{
		Title:       "Backend Engineer",
		Description: "Build and run the job portal APIs.",
		Location:    "Remote",
		SalaryMin:   1000,
		SalaryMax:   2000,
		ClosingDate: "2025-07-01",
	}
}

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()
	employer := domain.Employer{ID: "emp1"}

	newFixture := func() (*memStore, *recordingNotifier, domain.JobUsecase) {
		s := newMemStore()
		n := &recordingNotifier{}
		return s, n, usecase.NewJobUsecase(memJobRepo{s}, n, testClock())
	}

	t.Run("create validates input", func(t *testing.T) {
		_, _, uc := newFixture()

		job, err := uc.CreateJob(ctx, employer, validJobInput())
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusActive, job.Status)
		assert.Equal(t, "2025-07-01", job.ClosingDay())

		bad := validJobInput()
		bad.Title = ""
		_, err = uc.CreateJob(ctx, employer, bad)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		bad = validJobInput()
		bad.SalaryMax = 10
		_, err = uc.CreateJob(ctx, employer, bad)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		bad = validJobInput()
		bad.ClosingDate = "2025-06-09"
		_, err = uc.CreateJob(ctx, employer, bad)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("update notifies applicants", func(t *testing.T) {
		s, n, uc := newFixture()
		job, err := uc.CreateJob(ctx, employer, validJobInput())
		require.NoError(t, err)
		require.NoError(t, memJobRepo{s}.AddApplicant(ctx, job.ID, "cand1"))
		require.NoError(t, memJobRepo{s}.AddApplicant(ctx, job.ID, "cand2"))

		input := validJobInput()
		input.Title = "Senior Backend Engineer"
		updated, err := uc.UpdateJob(ctx, employer, job.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Senior Backend Engineer", updated.Title)

		sent := n.all()
		require.Len(t, sent, 2)
		assert.Equal(t, "The job 'Senior Backend Engineer' you applied to has been updated.", sent[0].Message)
	})

	t.Run("expired jobs cannot be edited or deleted", func(t *testing.T) {
		s, _, uc := newFixture()
		lapsed := s.addJob("emp1", "Old Role", "2025-06-01")

		_, err := uc.UpdateJob(ctx, employer, lapsed.ID, validJobInput())
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Equal(t, domain.JobStatusExpired, s.job(lapsed.ID).Status)

		err = uc.DeleteJob(ctx, employer, lapsed.ID)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("other employers cannot touch the job", func(t *testing.T) {
		s, _, uc := newFixture()
		job := s.addJob("emp2", "Their Role", "2025-07-01")

		err := uc.DeleteJob(ctx, employer, job.ID)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("sweep expires lapsed jobs and keeps going on failure", func(t *testing.T) {
		s, _, uc := newFixture()
		a := s.addJob("emp1", "A", "2025-06-01")
		b := s.addJob("emp1", "B", "2025-06-09")
		c := s.addJob("emp1", "C", "2025-06-10")
		d := s.addJob("emp1", "D", "2025-05-01")
		s.failMarkExpire[a.ID] = errBoom

		n, err := uc.ExpireElapsedJobs(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, domain.JobStatusActive, s.job(a.ID).Status)
		assert.Equal(t, domain.JobStatusExpired, s.job(b.ID).Status)
		assert.Equal(t, domain.JobStatusActive, s.job(c.ID).Status)
		assert.Equal(t, domain.JobStatusExpired, s.job(d.ID).Status)

		n, err = uc.ExpireElapsedJobs(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestBookmarks(t *testing.T) {
	ctx := context.Background()
	candidate := domain.Candidate{ID: "cand1"}
	s := newMemStore()
	s.addUser("cand1", "Jane Doe", domain.RoleCandidate)
	job := s.addJob("emp1", "Backend Engineer", "2025-07-01")
	repo := newMemBookmarkRepo()
	n := &recordingNotifier{}
	uc := usecase.NewBookmarkUsecase(repo, memJobRepo{s}, memUserRepo{s}, n)

	b, err := uc.Add(ctx, candidate, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", *b.JobTitle)
	require.Len(t, n.all(), 1)
	assert.Equal(t, "Jane Doe has bookmarked your job 'Backend Engineer'", n.all()[0].Message)

	_, err = uc.Add(ctx, candidate, job.ID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	_, err = uc.Add(ctx, candidate, 999)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, uc.Remove(ctx, candidate, job.ID))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(uc.Remove(ctx, candidate, job.ID)))
}
