package domain

import (
	"context"
	"time"
)

// Meeting status constants. Completed is part of the model but nothing sets it.
const (
	MeetingStatusScheduled = "Scheduled"
	MeetingStatusCompleted = "Completed"
	MeetingStatusCancelled = "Cancelled"
	MeetingStatusExpired   = "Expired"
)

// ClockLayout is the HH:MM wall-clock format used for meeting times.
const ClockLayout = "15:04"

// TimeSlot is a same-day [Start, End) interval. Date is YYYY-MM-DD, Start and
// End are zero-padded HH:MM, so string comparison follows the clock.
type TimeSlot struct {
	Date  string `json:"date" binding:"required,calendar_date"`
	Start string `json:"start_time" binding:"required,clock"`
	End   string `json:"end_time" binding:"required,clock"`
}

// Valid reports whether every field is present and Start precedes End.
func (s TimeSlot) Valid() bool {
	if s.Date == "" || s.Start == "" || s.End == "" {
		return false
	}
	// time.Parse accepts "9:00"; lexical comparison needs the padded form.
	if len(s.Start) != len(ClockLayout) || len(s.End) != len(ClockLayout) {
		return false
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return false
	}
	if _, err := time.Parse(ClockLayout, s.Start); err != nil {
		return false
	}
	if _, err := time.Parse(ClockLayout, s.End); err != nil {
		return false
	}
	return s.Start < s.End
}

// Overlaps applies the half-open rule: touching slots do not overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Date == o.Date && IntervalsOverlap(s.Start, s.End, o.Start, o.End)
}

// IntervalsOverlap reports whether [s1,e1) and [s2,e2) intersect.
func IntervalsOverlap(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// EndsAt resolves the end of the slot to an instant in loc.
func (s TimeSlot) EndsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+ClockLayout, s.Date+" "+s.End, loc)
}

type Meeting struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	ScheduledBy string    `json:"scheduled_by"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	MeetingURL  string    `json:"meeting_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	JobTitle *string `json:"job_title,omitempty"`
}

func (m *Meeting) Slot() TimeSlot {
	return TimeSlot{Date: m.Date, Start: m.StartTime, End: m.EndTime}
}

func (m *Meeting) IsParticipant(userID string) bool {
	return m.ScheduledBy == userID || m.CandidateID == userID
}

// ScheduleRequest is the employer's input for a new interview.
type ScheduleRequest struct {
	CandidateID string `json:"candidate_id" binding:"required"`
	TimeSlot
}

type MeetingRepository interface {
	Create(ctx context.Context, m *Meeting) error
	SetURL(ctx context.Context, id int64, url string) error
	GetByID(ctx context.Context, id int64) (*Meeting, error)
	// HasSchedulerOverlap looks at Scheduled meetings booked by scheduledBy.
	HasSchedulerOverlap(ctx context.Context, scheduledBy string, slot TimeSlot, excludeID int64) (bool, error)
	// HasCandidateOverlap looks at Scheduled meetings of candidateID booked by anyone but scheduledBy.
	HasCandidateOverlap(ctx context.Context, candidateID, scheduledBy string, slot TimeSlot, excludeID int64) (bool, error)
	// UpdateSlot and Cancel only touch Scheduled meetings and report whether a row changed.
	UpdateSlot(ctx context.Context, id int64, slot TimeSlot) (bool, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	ListByScheduler(ctx context.Context, scheduledBy string, limit, offset int) ([]Meeting, int64, error)
	ListScheduledForCandidate(ctx context.Context, candidateID string, limit, offset int) ([]Meeting, int64, error)
	ListScheduledThrough(ctx context.Context, date string) ([]Meeting, error)
	ExpireByIDs(ctx context.Context, ids []int64) (int64, error)
	// LockParticipants serializes scheduling per key until the surrounding
	// transaction ends.
	LockParticipants(ctx context.Context, keys ...string) error
}

type MeetingUsecase interface {
	Schedule(ctx context.Context, employer Employer, jobID int64, req ScheduleRequest) (*Meeting, error)
	Reschedule(ctx context.Context, employer Employer, meetingID int64, slot TimeSlot) (*Meeting, error)
	Cancel(ctx context.Context, employer Employer, meetingID int64) (*Meeting, error)
	GetMeeting(ctx context.Context, identity Identity, meetingID int64) (*Meeting, error)
	ListForEmployer(ctx context.Context, employer Employer, page, pageSize int) (*PaginatedResult[Meeting], error)
	ListForCandidate(ctx context.Context, candidate Candidate, page, pageSize int) (*PaginatedResult[Meeting], error)
	ExpireElapsed(ctx context.Context) (int, error)
}
