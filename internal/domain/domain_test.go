package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotValid(t *testing.T) {
	tests := []struct {
		name string
		slot TimeSlot
		want bool
	}{
		{"ordinary slot", TimeSlot{"2025-06-12", "10:00", "10:30"}, true},
		{"missing date", TimeSlot{"", "10:00", "10:30"}, false},
		{"end before start", TimeSlot{"2025-06-12", "11:00", "10:30"}, false},
		{"zero length", TimeSlot{"2025-06-12", "10:00", "10:00"}, false},
		{"not a calendar day", TimeSlot{"2025-02-30", "10:00", "10:30"}, false},
		{"unpadded clock", TimeSlot{"2025-06-12", "9:00", "9:30"}, false},
		{"out of range clock", TimeSlot{"2025-06-12", "10:00", "24:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Valid())
		})
	}
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := TimeSlot{"2025-06-12", "10:00", "11:00"}

	tests := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", base, true},
		{"contained", TimeSlot{"2025-06-12", "10:15", "10:45"}, true},
		{"straddles start", TimeSlot{"2025-06-12", "09:30", "10:01"}, true},
		{"ends exactly at start", TimeSlot{"2025-06-12", "09:00", "10:00"}, false},
		{"starts exactly at end", TimeSlot{"2025-06-12", "11:00", "11:30"}, false},
		{"same time other day", TimeSlot{"2025-06-13", "10:00", "11:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotEndsAt(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)

	end, err := TimeSlot{"2025-06-12", "10:00", "10:30"}.EndsAt(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 12, 3, 30, 0, 0, time.UTC), end.UTC())
}

func TestProtectedColumns(t *testing.T) {
	assert.Equal(t, []string{"All Applications", "Shortlisted"}, ProtectedColumns())
	assert.True(t, IsProtectedColumn("Shortlisted"))
	assert.True(t, IsProtectedColumn("  All Applications "))
	assert.False(t, IsProtectedColumn("shortlisted"))
	assert.False(t, IsProtectedColumn("Interview"))
}

func TestJobExpiry(t *testing.T) {
	job := &Job{Status: JobStatusActive, ClosingDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)}

	assert.False(t, job.IsExpired("2025-06-10"), "closing day itself is still open")
	assert.True(t, job.IsExpired("2025-06-11"))

	job.Status = JobStatusExpired
	assert.True(t, job.IsExpired("2025-01-01"))
}

func TestIdentityTickets(t *testing.T) {
	employer, ok := Identity{UserID: "u1", Role: RoleEmployer}.AsEmployer()
	require.True(t, ok)
	assert.Equal(t, "u1", employer.ID)

	_, ok = Identity{UserID: "u1", Role: RoleEmployer}.AsCandidate()
	assert.False(t, ok)

	_, ok = Identity{Role: RoleCandidate}.AsCandidate()
	assert.False(t, ok, "a ticket needs a user id")

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	_, size = NormalizePage(3, 500)
	assert.Equal(t, 100, size)

	result := NewPaginatedResult[Job](nil, 21, 1, 10)
	assert.NotNil(t, result.Data)
	assert.Equal(t, 3, result.TotalPages)
}
