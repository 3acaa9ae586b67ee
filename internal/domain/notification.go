package domain

import (
	"context"
	"time"
)

// Notification categories
const (
	CategoryInfo        = "info"
	CategoryApplication = "application"
	CategoryMeeting     = "meeting"
	CategoryBookmark    = "bookmark"
	CategoryJob         = "job"
)

// Payload "type" values describing who triggered the notification.
const (
	PayloadFromCandidate = "Candidate"
	PayloadFromEmployer  = "Employer"
)

type Notification struct {
	ID        string                 `json:"id" bson:"_id"`
	UserID    string                 `json:"user_id" bson:"user_id"`
	Message   string                 `json:"message" bson:"message"`
	Type      string                 `json:"type" bson:"type"`
	Data      map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	IsRead    bool                   `json:"is_read" bson:"is_read"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
}

// NewNotification is what a workflow event hands to the dispatcher.
type NewNotification struct {
	RecipientID string
	Message     string
	Category    string
	Payload     map[string]interface{}
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Notification, int64, error)
	// MarkRead, Delete return ErrNotFound when id is not one of userID's notifications.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteAll(ctx context.Context, userID string) (int64, error)
}

// PushToken is a registered device endpoint for push delivery.
type PushToken struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PushTokenRepository interface {
	Upsert(ctx context.Context, token *PushToken) error
	ListByUser(ctx context.Context, userID string) ([]PushToken, error)
	Delete(ctx context.Context, userID, token string) error
	DeleteTokens(ctx context.Context, tokens []string) (int64, error)
}

// PushSender delivers one message to many device tokens and returns the
// tokens that the transport rejected.
type PushSender interface {
	Push(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error)
}

// Mailer sends one HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type NotificationUsecase interface {
	Notify(ctx context.Context, n NewNotification) (*Notification, error)
	List(ctx context.Context, userID string, page, perPage int) (*PaginatedResult[Notification], error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) (int64, error)
	RegisterPushToken(ctx context.Context, userID, token, platform string) error
	UnregisterPushToken(ctx context.Context, userID, token string) error
}
