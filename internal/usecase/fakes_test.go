package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/internal/usecase"
)

var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func testClock() usecase.Clock {
	return usecase.Clock{Location: time.UTC, Now: func() time.Time { return fixedNow }}
}

// memStore is an in-memory stand-in for the relational store. Transactions
// are serialized and roll back by restoring a snapshot.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	nextID   int64
	users    map[string]domain.User
	jobs     map[int64]domain.Job
	columns  map[int64]domain.Column
	apps     map[int64]domain.Application
	meetings map[int64]domain.Meeting

	lockedKeys []string

	failRename     error
	failReassign   error
	failMarkExpire map[int64]error
}

func newMemStore() *memStore {
	return &memStore{
		users:          map[string]domain.User{},
		jobs:           map[int64]domain.Job{},
		columns:        map[int64]domain.Column{},
		apps:           map[int64]domain.Application{},
		meetings:       map[int64]domain.Meeting{},
		failMarkExpire: map[int64]error{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(id, name string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = domain.User{ID: id, Email: id + "@example.com", FullName: name, Role: role}
}

func (s *memStore) addJob(employerID, title, closing string) domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	closingDate, _ := time.Parse(domain.DateLayout, closing)
	j := domain.Job{
		ID:          s.id(),
		EmployerID:  employerID,
		Title:       title,
		ClosingDate: closingDate,
		Status:      domain.JobStatusActive,
		CreatedAt:   fixedNow,
	}
	s.jobs[j.ID] = j
	return j
}

func (s *memStore) job(id int64) domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *memStore) app(id int64) domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apps[id]
}

func (s *memStore) meeting(id int64) domain.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meetings[id]
}

func (s *memStore) putApp(a domain.Application) domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.apps[a.ID] = a
	return a
}

func (s *memStore) putMeeting(m domain.Meeting) domain.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.id()
	s.meetings[m.ID] = m
	return m
}

type snapshot struct {
	jobs     map[int64]domain.Job
	columns  map[int64]domain.Column
	apps     map[int64]domain.Application
	meetings map[int64]domain.Meeting
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WithinTransaction implements domain.Transactor.
func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := snapshot{cloneMap(s.jobs), cloneMap(s.columns), cloneMap(s.apps), cloneMap(s.meetings)}
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.jobs, s.columns, s.apps, s.meetings = snap.jobs, snap.columns, snap.apps, snap.meetings
		s.mu.Unlock()
		return err
	}
	return nil
}

// users

type memUserRepo struct{ s *memStore }

func (r memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// jobs

type memJobRepo struct{ s *memStore }

func (r memJobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job.ID = r.s.id()
	job.CreatedAt, job.UpdatedAt = fixedNow, fixedNow
	r.s.jobs[job.ID] = *job
	return nil
}

func (r memJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	j.ApplicantIDs = append([]string(nil), j.ApplicantIDs...)
	return &j, nil
}

func (r memJobRepo) ListByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Job
	for _, j := range r.s.jobs {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return page(out, limit, offset), int64(len(out)), nil
}

func (r memJobRepo) Update(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.jobs[job.ID]
	if !ok || cur.Status == domain.JobStatusExpired {
		return domain.ErrNotFound
	}
	job.UpdatedAt = fixedNow
	r.s.jobs[job.ID] = *job
	return nil
}

func (r memJobRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.jobs[id]
	if !ok || cur.Status == domain.JobStatusExpired {
		return domain.ErrNotFound
	}
	delete(r.s.jobs, id)
	return nil
}

func (r memJobRepo) AddApplicant(ctx context.Context, jobID int64, candidateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[jobID]
	if !ok || j.Status == domain.JobStatusExpired {
		return domain.ErrNotFound
	}
	if !j.HasApplicant(candidateID) {
		j.ApplicantIDs = append(append([]string(nil), j.ApplicantIDs...), candidateID)
	}
	r.s.jobs[jobID] = j
	return nil
}

func (r memJobRepo) MarkExpired(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failMarkExpire[id]; err != nil {
		return false, err
	}
	j, ok := r.s.jobs[id]
	if !ok || j.Status == domain.JobStatusExpired {
		return false, nil
	}
	j.Status = domain.JobStatusExpired
	r.s.jobs[id] = j
	return true, nil
}

func (r memJobRepo) ListLapsedIDs(ctx context.Context, today string) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []int64
	for _, j := range r.s.jobs {
		if j.Status == domain.JobStatusActive && j.HasLapsed(today) {
			ids = append(ids, j.ID)
		}
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids, nil
}

// columns

type memColumnRepo struct{ s *memStore }

func (r memColumnRepo) Create(ctx context.Context, c *domain.Column) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.columns {
		if existing.EmployerID == c.EmployerID && existing.JobID == c.JobID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.s.id()
	c.CreatedAt = fixedNow.Add(time.Duration(c.ID) * time.Second)
	r.s.columns[c.ID] = *c
	return nil
}

func (r memColumnRepo) GetForEmployer(ctx context.Context, id int64, employerID string) (*domain.Column, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.columns[id]
	if !ok || c.EmployerID != employerID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r memColumnRepo) FindByName(ctx context.Context, employerID string, jobID int64, name string) (*domain.Column, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.columns {
		if c.EmployerID == employerID && c.JobID == jobID && c.Name == name {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memColumnRepo) ExistsByName(ctx context.Context, employerID string, jobID int64, name string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.columns {
		if c.ID != excludeID && c.EmployerID == employerID && c.JobID == jobID && c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r memColumnRepo) List(ctx context.Context, employerID string, jobID *int64) ([]domain.Column, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Column
	for _, c := range r.s.columns {
		if c.EmployerID == employerID && (jobID == nil || c.JobID == *jobID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

func (r memColumnRepo) Rename(ctx context.Context, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failRename != nil {
		return r.s.failRename
	}
	c, ok := r.s.columns[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Name = name
	r.s.columns[id] = c
	return nil
}

func (r memColumnRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.columns[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.columns, id)
	return nil
}

// applications

type memApplicationRepo struct{ s *memStore }

func (r memApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.apps {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return domain.ErrDuplicate
		}
	}
	a.ID = r.s.id()
	a.CreatedAt, a.UpdatedAt = fixedNow, fixedNow
	r.s.apps[a.ID] = *a
	return nil
}

func (r memApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r memApplicationRepo) list(keep func(domain.Application) bool) []domain.Application {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Application
	for _, a := range r.s.apps {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(x, y int) bool { return out[x].ID < out[y].ID })
	return out
}

func (r memApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r memApplicationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Application, error) {
	return r.list(func(a domain.Application) bool { return a.CandidateID == candidateID }), nil
}

func (r memApplicationRepo) CheckExists(ctx context.Context, jobID int64, candidateID string) (bool, error) {
	return len(r.list(func(a domain.Application) bool {
		return a.JobID == jobID && a.CandidateID == candidateID
	})) > 0, nil
}

func (r memApplicationRepo) UpdateTrelloName(ctx context.Context, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.TrelloName = name
	r.s.apps[id] = a
	return nil
}

func (r memApplicationRepo) ReassignColumn(ctx context.Context, jobID int64, from, to string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failReassign != nil {
		return 0, r.s.failReassign
	}
	var n int64
	for id, a := range r.s.apps {
		if a.JobID == jobID && a.TrelloName == from {
			a.TrelloName = to
			r.s.apps[id] = a
			n++
		}
	}
	return n, nil
}

// meetings

type memMeetingRepo struct{ s *memStore }

func (r memMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	m.CreatedAt, m.UpdatedAt = fixedNow, fixedNow
	r.s.meetings[m.ID] = *m
	return nil
}

func (r memMeetingRepo) SetURL(ctx context.Context, id int64, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.MeetingURL = url
	r.s.meetings[id] = m
	return nil
}

func (r memMeetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r memMeetingRepo) overlaps(keep func(domain.Meeting) bool, slot domain.TimeSlot, excludeID int64) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.meetings {
		if m.ID == excludeID || m.Status != domain.MeetingStatusScheduled || !keep(m) {
			continue
		}
		if m.Slot().Overlaps(slot) {
			return true
		}
	}
	return false
}

func (r memMeetingRepo) HasSchedulerOverlap(ctx context.Context, scheduledBy string, slot domain.TimeSlot, excludeID int64) (bool, error) {
	return r.overlaps(func(m domain.Meeting) bool { return m.ScheduledBy == scheduledBy }, slot, excludeID), nil
}

func (r memMeetingRepo) HasCandidateOverlap(ctx context.Context, candidateID, scheduledBy string, slot domain.TimeSlot, excludeID int64) (bool, error) {
	return r.overlaps(func(m domain.Meeting) bool {
		return m.CandidateID == candidateID && m.ScheduledBy != scheduledBy
	}, slot, excludeID), nil
}

func (r memMeetingRepo) UpdateSlot(ctx context.Context, id int64, slot domain.TimeSlot) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok || m.Status != domain.MeetingStatusScheduled {
		return false, nil
	}
	m.Date, m.StartTime, m.EndTime = slot.Date, slot.Start, slot.End
	r.s.meetings[id] = m
	return true, nil
}

func (r memMeetingRepo) Cancel(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.meetings[id]
	if !ok || m.Status != domain.MeetingStatusScheduled {
		return false, nil
	}
	m.Status = domain.MeetingStatusCancelled
	r.s.meetings[id] = m
	return true, nil
}

func (r memMeetingRepo) listWhere(keep func(domain.Meeting) bool) []domain.Meeting {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Meeting
	for _, m := range r.s.meetings {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

func (r memMeetingRepo) ListByScheduler(ctx context.Context, scheduledBy string, limit, offset int) ([]domain.Meeting, int64, error) {
	all := r.listWhere(func(m domain.Meeting) bool { return m.ScheduledBy == scheduledBy })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r memMeetingRepo) ListScheduledForCandidate(ctx context.Context, candidateID string, limit, offset int) ([]domain.Meeting, int64, error) {
	all := r.listWhere(func(m domain.Meeting) bool {
		return m.CandidateID == candidateID && m.Status == domain.MeetingStatusScheduled
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r memMeetingRepo) ListScheduledThrough(ctx context.Context, date string) ([]domain.Meeting, error) {
	return r.listWhere(func(m domain.Meeting) bool {
		return m.Status == domain.MeetingStatusScheduled && m.Date <= date
	}), nil
}

func (r memMeetingRepo) ExpireByIDs(ctx context.Context, ids []int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		m, ok := r.s.meetings[id]
		if ok && m.Status == domain.MeetingStatusScheduled {
			m.Status = domain.MeetingStatusExpired
			r.s.meetings[id] = m
			n++
		}
	}
	return n, nil
}

func (r memMeetingRepo) LockParticipants(ctx context.Context, keys ...string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lockedKeys = append(r.s.lockedKeys, keys...)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// recordingNotifier captures workflow notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.NewNotification
	fail error
}

func (n *recordingNotifier) Notify(ctx context.Context, in domain.NewNotification) (*domain.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return nil, n.fail
	}
	n.sent = append(n.sent, in)
	return &domain.Notification{UserID: in.RecipientID, Message: in.Message, Type: in.Category}, nil
}

func (n *recordingNotifier) all() []domain.NewNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.NewNotification(nil), n.sent...)
}

func (n *recordingNotifier) List(ctx context.Context, userID string, page, perPage int) (*domain.PaginatedResult[domain.Notification], error) {
	return domain.NewPaginatedResult[domain.Notification](nil, 0, page, perPage), nil
}
func (n *recordingNotifier) MarkRead(ctx context.Context, userID, id string) error { return nil }
func (n *recordingNotifier) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}
func (n *recordingNotifier) Delete(ctx context.Context, userID, id string) error { return nil }
func (n *recordingNotifier) DeleteAll(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}
func (n *recordingNotifier) RegisterPushToken(ctx context.Context, userID, token, platform string) error {
	return nil
}
func (n *recordingNotifier) UnregisterPushToken(ctx context.Context, userID, token string) error {
	return nil
}

type sentMail struct{ to, subject, body string }

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

var errBoom = errors.New("boom")

type memBookmarkRepo struct {
	mu    sync.Mutex
	items map[string]domain.Bookmark
}

func newMemBookmarkRepo() *memBookmarkRepo {
	return &memBookmarkRepo{items: map[string]domain.Bookmark{}}
}

func bookmarkKey(candidateID string, jobID int64) string {
	return candidateID + "/" + strconv.FormatInt(jobID, 10)
}

func (r *memBookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := bookmarkKey(b.CandidateID, b.JobID)
	if _, ok := r.items[key]; ok {
		return domain.ErrDuplicate
	}
	b.ID = int64(len(r.items) + 1)
	b.CreatedAt = fixedNow
	r.items[key] = *b
	return nil
}

func (r *memBookmarkRepo) Exists(ctx context.Context, candidateID string, jobID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[bookmarkKey(candidateID, jobID)]
	return ok, nil
}

func (r *memBookmarkRepo) Delete(ctx context.Context, candidateID string, jobID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := bookmarkKey(candidateID, jobID)
	if _, ok := r.items[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, key)
	return nil
}

func (r *memBookmarkRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Bookmark
	for _, b := range r.items {
		if b.CandidateID == candidateID {
			out = append(out, b)
		}
	}
	return out, nil
}
