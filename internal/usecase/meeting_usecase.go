package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/email"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
)

type meetingUsecase struct {
	tx          domain.Transactor
	meetingRepo domain.MeetingRepository
	jobRepo     domain.JobRepository
	userRepo    domain.UserRepository
	notifier    domain.NotificationUsecase
	mailer      domain.Mailer
	clock       Clock
	appURL      string
	strict      bool
}

// MeetingDeps groups the collaborators of the meeting scheduler. Strict makes
// the overlap check and the insert atomic per participant.
type MeetingDeps struct {
	Tx          domain.Transactor
	MeetingRepo domain.MeetingRepository
	JobRepo     domain.JobRepository
	UserRepo    domain.UserRepository
	Notifier    domain.NotificationUsecase
	Mailer      domain.Mailer
	Clock       Clock
	AppURL      string
	Strict      bool
}

func NewMeetingUsecase(deps MeetingDeps) domain.MeetingUsecase {
	return &meetingUsecase{
		tx:          deps.Tx,
		meetingRepo: deps.MeetingRepo,
		jobRepo:     deps.JobRepo,
		userRepo:    deps.UserRepo,
		notifier:    deps.Notifier,
		mailer:      deps.Mailer,
		clock:       deps.Clock,
		appURL:      deps.AppURL,
		strict:      deps.Strict,
	}
}

// Schedule books an interview between the employer and a candidate
func (uc *meetingUsecase) Schedule(ctx context.Context, employer domain.Employer, jobID int64, req domain.ScheduleRequest) (*domain.Meeting, error) {
	// 1. Validate slot
	if req.CandidateID == "" {
		return nil, apperror.BadRequest("Candidate is required")
	}
	if !req.TimeSlot.Valid() {
		return nil, invalidSlot()
	}

	// 2. Validate job ownership and candidate
	job, err := ownedJob(ctx, uc.jobRepo, employer, jobID)
	if err != nil {
		return nil, err
	}
	candidate, err := uc.userRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found")
		}
		return nil, apperror.Internal(err)
	}
	if candidate.Role != domain.RoleCandidate {
		return nil, apperror.NotFound("Candidate not found")
	}

	// 3. Check both calendars and book
	meeting := &domain.Meeting{
		JobID:       jobID,
		CandidateID: candidate.ID,
		ScheduledBy: employer.ID,
		Date:        req.Date,
		StartTime:   req.Start,
		EndTime:     req.End,
		Status:      domain.MeetingStatusScheduled,
	}
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.checkAvailability(ctx, employer.ID, candidate.ID, req.TimeSlot, 0); err != nil {
			return err
		}
		if err := uc.meetingRepo.Create(ctx, meeting); err != nil {
			return apperror.Internal(err)
		}
		meeting.MeetingURL = fmt.Sprintf("%s/meeting/%d", uc.appURL, meeting.ID)
		if err := uc.meetingRepo.SetURL(ctx, meeting.ID, meeting.MeetingURL); err != nil {
			return apperror.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	meeting.JobTitle = &job.Title

	logger.Log.Info("Meeting scheduled",
		"meeting_id", meeting.ID, "job_id", jobID, "candidate_id", candidate.ID)

	// 4. Tell the candidate
	uc.announce(ctx, meeting, job.Title, candidate, email.MeetingScheduled,
		fmt.Sprintf("A meeting has been scheduled for the job '%s' on %s from %s to %s",
			job.Title, meeting.Date, meeting.StartTime, meeting.EndTime))
	return meeting, nil
}

// Reschedule moves a Scheduled meeting to another slot
func (uc *meetingUsecase) Reschedule(ctx context.Context, employer domain.Employer, meetingID int64, slot domain.TimeSlot) (*domain.Meeting, error) {
	if !slot.Valid() {
		return nil, invalidSlot()
	}

	var meeting *domain.Meeting
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		meeting, err = uc.schedulersMeeting(ctx, employer, meetingID)
		if err != nil {
			return err
		}
		if meeting.Status != domain.MeetingStatusScheduled {
			return apperror.Conflict(fmt.Sprintf("Cannot reschedule a meeting that is %s", meeting.Status))
		}

		if err := uc.checkAvailability(ctx, employer.ID, meeting.CandidateID, slot, meeting.ID); err != nil {
			return err
		}
		updated, err := uc.meetingRepo.UpdateSlot(ctx, meeting.ID, slot)
		if err != nil {
			return apperror.Internal(err)
		}
		if !updated {
			return apperror.Conflict("Meeting is no longer scheduled")
		}
		meeting.Date, meeting.StartTime, meeting.EndTime = slot.Date, slot.Start, slot.End
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Meeting rescheduled", "meeting_id", meeting.ID, "date", slot.Date, "start", slot.Start)

	title := uc.jobTitle(ctx, meeting)
	uc.announce(ctx, meeting, title, nil, email.MeetingRescheduled,
		fmt.Sprintf("Your meeting for '%s' has been rescheduled to %s from %s to %s.",
			title, meeting.Date, meeting.StartTime, meeting.EndTime))
	return meeting, nil
}

// Cancel withdraws a Scheduled meeting. Cancelling twice is a no-op.
func (uc *meetingUsecase) Cancel(ctx context.Context, employer domain.Employer, meetingID int64) (*domain.Meeting, error) {
	meeting, err := uc.schedulersMeeting(ctx, employer, meetingID)
	if err != nil {
		return nil, err
	}

	switch meeting.Status {
	case domain.MeetingStatusCancelled:
		return meeting, nil
	case domain.MeetingStatusScheduled:
	default:
		return nil, apperror.Conflict(fmt.Sprintf("Cannot cancel a meeting that is %s", meeting.Status))
	}

	cancelled, err := uc.meetingRepo.Cancel(ctx, meeting.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !cancelled {
		// lost a race with another cancel or the expiry sweep
		current, err := uc.meetingRepo.GetByID(ctx, meeting.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if current.Status == domain.MeetingStatusCancelled {
			return current, nil
		}
		return nil, apperror.Conflict(fmt.Sprintf("Cannot cancel a meeting that is %s", current.Status))
	}
	meeting.Status = domain.MeetingStatusCancelled

	logger.Log.Info("Meeting cancelled", "meeting_id", meeting.ID)

	title := uc.jobTitle(ctx, meeting)
	uc.announce(ctx, meeting, title, nil, email.MeetingCancelled,
		fmt.Sprintf("Your meeting for the job '%s' on %s has been cancelled.", title, meeting.Date))
	return meeting, nil
}

// GetMeeting returns a meeting to either of its participants
func (uc *meetingUsecase) GetMeeting(ctx context.Context, identity domain.Identity, meetingID int64) (*domain.Meeting, error) {
	meeting, err := uc.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Meeting not found")
		}
		return nil, apperror.Internal(err)
	}
	if !meeting.IsParticipant(identity.UserID) {
		return nil, apperror.NotFound("Meeting not found")
	}
	return meeting, nil
}

func (uc *meetingUsecase) ListForEmployer(ctx context.Context, employer domain.Employer, page, pageSize int) (*domain.PaginatedResult[domain.Meeting], error) {
	page, pageSize = domain.NormalizePage(page, pageSize)
	meetings, total, err := uc.meetingRepo.ListByScheduler(ctx, employer.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(meetings, total, page, pageSize), nil
}

// ListForCandidate only shows meetings that are still Scheduled
func (uc *meetingUsecase) ListForCandidate(ctx context.Context, candidate domain.Candidate, page, pageSize int) (*domain.PaginatedResult[domain.Meeting], error) {
	page, pageSize = domain.NormalizePage(page, pageSize)
	meetings, total, err := uc.meetingRepo.ListScheduledForCandidate(ctx, candidate.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(meetings, total, page, pageSize), nil
}

// ExpireElapsed flips every Scheduled meeting whose end instant has passed.
// Records with unparseable times are logged and skipped.
func (uc *meetingUsecase) ExpireElapsed(ctx context.Context) (int, error) {
	now := uc.clock.now()
	candidates, err := uc.meetingRepo.ListScheduledThrough(ctx, now.Format(domain.DateLayout))
	if err != nil {
		return 0, err
	}

	var ids []int64
	for _, m := range candidates {
		end, err := m.Slot().EndsAt(uc.clock.location())
		if err != nil {
			logger.Log.Warn("skipping meeting with unparseable time",
				"meeting_id", m.ID, "date", m.Date, "end_time", m.EndTime, "error", err)
			continue
		}
		if end.Before(now) {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	expired, err := uc.meetingRepo.ExpireByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("Expired elapsed meetings", "count", expired)
	return int(expired), nil
}

// checkAvailability runs both overlap checks. In strict mode it first takes
// per-participant locks that are held until the transaction ends.
func (uc *meetingUsecase) checkAvailability(ctx context.Context, schedulerID, candidateID string, slot domain.TimeSlot, excludeID int64) error {
	if uc.strict {
		if err := uc.meetingRepo.LockParticipants(ctx,
			"meeting:scheduler:"+schedulerID, "meeting:candidate:"+candidateID); err != nil {
			return apperror.Internal(err)
		}
	}

	busy, err := uc.meetingRepo.HasSchedulerOverlap(ctx, schedulerID, slot, excludeID)
	if err != nil {
		return apperror.Internal(err)
	}
	if busy {
		return apperror.Conflict("You already have a meeting scheduled in this time slot")
	}

	busy, err = uc.meetingRepo.HasCandidateOverlap(ctx, candidateID, schedulerID, slot, excludeID)
	if err != nil {
		return apperror.Internal(err)
	}
	if busy {
		return apperror.Conflict("The candidate already has a meeting scheduled in this time slot")
	}
	return nil
}

// schedulersMeeting loads a meeting only the booking employer may change.
func (uc *meetingUsecase) schedulersMeeting(ctx context.Context, employer domain.Employer, meetingID int64) (*domain.Meeting, error) {
	meeting, err := uc.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Meeting not found")
		}
		return nil, apperror.Internal(err)
	}
	if meeting.ScheduledBy != employer.ID {
		return nil, apperror.NotFound("Meeting not found")
	}
	return meeting, nil
}

func (uc *meetingUsecase) jobTitle(ctx context.Context, m *domain.Meeting) string {
	if m.JobTitle != nil {
		return *m.JobTitle
	}
	job, err := uc.jobRepo.GetByID(ctx, m.JobID)
	if err != nil {
		return "your application"
	}
	return job.Title
}

func (uc *meetingUsecase) announce(ctx context.Context, m *domain.Meeting, jobTitle string, candidate *domain.User, event email.MeetingEvent, message string) {
	notifyQuietly(ctx, uc.notifier, domain.NewNotification{
		RecipientID: m.CandidateID,
		Message:     message,
		Category:    domain.CategoryMeeting,
		Payload: map[string]interface{}{
			"type":      domain.PayloadFromEmployer,
			"id":        m.ScheduledBy,
			"meetingId": m.ID,
			"jobId":     m.JobID,
			"status":    m.Status,
		},
	})

	if candidate == nil {
		user, err := uc.userRepo.GetByID(ctx, m.CandidateID)
		if err != nil {
			logger.Log.Warn("candidate not found for meeting email", "candidate_id", m.CandidateID, "error", err)
			return
		}
		candidate = user
	}
	mailQuietly(ctx, uc.mailer, candidate.Email, func() (string, string, error) {
		return email.RenderMeeting(email.MeetingData{
			Event:         event,
			CandidateName: candidate.DisplayName(),
			JobTitle:      jobTitle,
			Date:          m.Date,
			StartTime:     m.StartTime,
			EndTime:       m.EndTime,
			MeetingURL:    m.MeetingURL,
		})
	})
}

func invalidSlot() error {
	return apperror.BadRequest("Meeting needs a valid date and a start time before its end time")
}
