package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type meetingRepo struct {
	db *pgxpool.Pool
}

func NewMeetingRepository(db *pgxpool.Pool) domain.MeetingRepository {
	return &meetingRepo{db: db}
}

const meetingColumns = `m.id, m.job_id, m.candidate_id, m.scheduled_by, m.meeting_date, m.start_time, m.end_time,
	m.status, m.meeting_url, m.created_at, m.updated_at, j.title`

func scanMeeting(row rowScanner) (*domain.Meeting, error) {
	var m domain.Meeting
	err := row.Scan(
		&m.ID, &m.JobID, &m.CandidateID, &m.ScheduledBy, &m.Date, &m.StartTime, &m.EndTime,
		&m.Status, &m.MeetingURL, &m.CreatedAt, &m.UpdatedAt, &m.JobTitle,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	query := `INSERT INTO meetings (job_id, candidate_id, scheduled_by, meeting_date, start_time, end_time, status, meeting_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.MeetingStatusScheduled
	}

	err := conn(ctx, r.db).QueryRow(ctx, query,
		m.JobID, m.CandidateID, m.ScheduledBy, m.Date, m.StartTime, m.EndTime, m.Status, m.MeetingURL,
		m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	return mapErr(err)
}

func (r *meetingRepo) SetURL(ctx context.Context, id int64, url string) error {
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE meetings SET meeting_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings m LEFT JOIN jobs j ON m.job_id = j.id WHERE m.id = $1`
	m, err := scanMeeting(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

// Times are stored as zero-padded HH:MM text, so lexical order is clock order.
func (r *meetingRepo) HasSchedulerOverlap(ctx context.Context, scheduledBy string, slot domain.TimeSlot, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(
	              SELECT 1 FROM meetings
	              WHERE scheduled_by = $1 AND meeting_date = $2 AND status = $3
	                AND start_time < $5 AND end_time > $4
	                AND id <> $6)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query,
		scheduledBy, slot.Date, domain.MeetingStatusScheduled, slot.Start, slot.End, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *meetingRepo) HasCandidateOverlap(ctx context.Context, candidateID, scheduledBy string, slot domain.TimeSlot, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(
	              SELECT 1 FROM meetings
	              WHERE candidate_id = $1 AND scheduled_by <> $2 AND meeting_date = $3 AND status = $4
	                AND start_time < $6 AND end_time > $5
	                AND id <> $7)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query,
		candidateID, scheduledBy, slot.Date, domain.MeetingStatusScheduled, slot.Start, slot.End, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *meetingRepo) UpdateSlot(ctx context.Context, id int64, slot domain.TimeSlot) (bool, error) {
	query := `UPDATE meetings SET meeting_date = $2, start_time = $3, end_time = $4, updated_at = $5
	          WHERE id = $1 AND status = $6`
	result, err := conn(ctx, r.db).Exec(ctx, query,
		id, slot.Date, slot.Start, slot.End, time.Now(), domain.MeetingStatusScheduled,
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *meetingRepo) Cancel(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE meetings SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	result, err := conn(ctx, r.db).Exec(ctx, query,
		id, domain.MeetingStatusCancelled, time.Now(), domain.MeetingStatusScheduled,
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *meetingRepo) ListByScheduler(ctx context.Context, scheduledBy string, limit, offset int) ([]domain.Meeting, int64, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings m LEFT JOIN jobs j ON m.job_id = j.id
	          WHERE m.scheduled_by = $1
	          ORDER BY m.meeting_date DESC, m.start_time DESC
	          LIMIT $2 OFFSET $3`
	count := `SELECT COUNT(*) FROM meetings WHERE scheduled_by = $1`
	return r.list(ctx, query, count, []any{scheduledBy}, limit, offset)
}

func (r *meetingRepo) ListScheduledForCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.Meeting, int64, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings m LEFT JOIN jobs j ON m.job_id = j.id
	          WHERE m.candidate_id = $1 AND m.status = $2
	          ORDER BY m.meeting_date ASC, m.start_time ASC
	          LIMIT $3 OFFSET $4`
	count := `SELECT COUNT(*) FROM meetings WHERE candidate_id = $1 AND status = $2`
	return r.list(ctx, query, count, []any{candidateID, domain.MeetingStatusScheduled}, limit, offset)
}

func (r *meetingRepo) list(ctx context.Context, query, count string, args []any, limit, offset int) ([]domain.Meeting, int64, error) {
	q := conn(ctx, r.db)

	rows, err := q.Query(ctx, query, append(append([]any{}, args...), limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, err
		}
		meetings = append(meetings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.QueryRow(ctx, count, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

// ListScheduledThrough returns Scheduled meetings dated on or before date.
func (r *meetingRepo) ListScheduledThrough(ctx context.Context, date string) ([]domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings m LEFT JOIN jobs j ON m.job_id = j.id
	          WHERE m.status = $1 AND m.meeting_date <= $2
	          ORDER BY m.id`
	rows, err := conn(ctx, r.db).Query(ctx, query, domain.MeetingStatusScheduled, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}
	return meetings, rows.Err()
}

// ExpireByIDs only flips rows that are still Scheduled.
func (r *meetingRepo) ExpireByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE meetings SET status = $2, updated_at = NOW() WHERE id = ANY($1) AND status = $3`
	result, err := conn(ctx, r.db).Exec(ctx, query, pq.Array(ids), domain.MeetingStatusExpired, domain.MeetingStatusScheduled)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// LockParticipants takes transaction-scoped advisory locks in a fixed order
// so two bookings touching the same participants cannot deadlock.
func (r *meetingRepo) LockParticipants(ctx context.Context, keys ...string) error {
	if !inTx(ctx) {
		return fmt.Errorf("lock participants: no transaction in context")
	}
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	q := conn(ctx, r.db)
	for _, key := range sorted {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return fmt.Errorf("advisory lock %s: %w", key, err)
		}
	}
	return nil
}
