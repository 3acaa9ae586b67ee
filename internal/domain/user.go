package domain

import (
	"context"
	"time"
)

// Role is the closed set of caller kinds the workflow engine knows about.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// ParseRole maps a stored role string onto a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCandidate:
		return RoleCandidate, true
	case RoleEmployer:
		return RoleEmployer, true
	}
	return "", false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName falls back to the email when no name is on file.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Identity is the authenticated caller resolved from the bearer credential.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// Employer and Candidate are the role-specific entry tickets. Operations that
// only one role may perform take one of these instead of a bare user id.
type Employer struct{ ID string }

type Candidate struct{ ID string }

func (i Identity) AsEmployer() (Employer, bool) {
	if i.Role != RoleEmployer || i.UserID == "" {
		return Employer{}, false
	}
	return Employer{ID: i.UserID}, true
}

func (i Identity) AsCandidate() (Candidate, bool) {
	if i.Role != RoleCandidate || i.UserID == "" {
		return Candidate{}, false
	}
	return Candidate{ID: i.UserID}, true
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
