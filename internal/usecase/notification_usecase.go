package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
	pushTokenRepo    domain.PushTokenRepository
	pusher           domain.PushSender
	clock            Clock
}

// NewNotificationUsecase creates the notification dispatcher. pusher may be
// nil, in which case notifications are stored but never pushed.
func NewNotificationUsecase(
	notificationRepo domain.NotificationRepository,
	pushTokenRepo domain.PushTokenRepository,
	pusher domain.PushSender,
	clock Clock,
) domain.NotificationUsecase {
	return &notificationUsecase{
		notificationRepo: notificationRepo,
		pushTokenRepo:    pushTokenRepo,
		pusher:           pusher,
		clock:            clock,
	}
}

// Notify persists a notification and pushes it to the recipient's devices.
// Push is best-effort: the stored record is returned even if delivery fails.
func (u *notificationUsecase) Notify(ctx context.Context, n domain.NewNotification) (*domain.Notification, error) {
	// 1. Validate
	if n.RecipientID == "" {
		return nil, apperror.BadRequest("Notification recipient is required")
	}
	message := strings.TrimSpace(n.Message)
	if message == "" {
		return nil, apperror.BadRequest("Notification message is required")
	}
	category := n.Category
	if category == "" {
		category = domain.CategoryInfo
	}

	// 2. Persist
	notification := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    n.RecipientID,
		Message:   message,
		Type:      category,
		Data:      n.Payload,
		IsRead:    false,
		CreatedAt: u.clock.now().UTC(),
	}
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		return nil, apperror.Internal(err)
	}

	// 3. Push
	u.push(ctx, notification)
	return notification, nil
}

func (u *notificationUsecase) push(ctx context.Context, n *domain.Notification) {
	if u.pusher == nil || u.pushTokenRepo == nil {
		return
	}
	tokens, err := u.pushTokenRepo.ListByUser(ctx, n.UserID)
	if err != nil {
		logger.Log.Warn("failed to load push tokens", "user_id", n.UserID, "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Token)
	}
	data := map[string]string{
		"notificationId": n.ID,
		"type":           n.Type,
		"message":        n.Message,
		"createdAt":      n.CreatedAt.Format(time.RFC3339),
		"isRead":         fmt.Sprintf("%t", n.IsRead),
	}

	dead, err := u.pusher.Push(ctx, values, pushTitle(n.Type), n.Message, data)
	if err != nil {
		logger.Log.Warn("push delivery failed", "notification_id", n.ID, "error", err)
	}
	if len(dead) > 0 {
		removed, err := u.pushTokenRepo.DeleteTokens(ctx, dead)
		if err != nil {
			logger.Log.Warn("failed to prune dead push tokens", "error", err)
			return
		}
		logger.Log.Info("Pruned dead push tokens", "user_id", n.UserID, "count", removed)
	}
}

func pushTitle(category string) string {
	if category == "" {
		return "Notification"
	}
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}

func (u *notificationUsecase) List(ctx context.Context, userID string, page, perPage int) (*domain.PaginatedResult[domain.Notification], error) {
	page, perPage = domain.NormalizePage(page, perPage)
	items, total, err := u.notificationRepo.ListByUser(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.NewPaginatedResult(items, total, page, perPage), nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, userID, id string) error {
	if err := u.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := u.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, userID, id string) error {
	if err := u.notificationRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *notificationUsecase) DeleteAll(ctx context.Context, userID string) (int64, error) {
	n, err := u.notificationRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (u *notificationUsecase) RegisterPushToken(ctx context.Context, userID, token, platform string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperror.BadRequest("Push token is required")
	}
	if platform == "" {
		platform = "web"
	}
	if err := u.pushTokenRepo.Upsert(ctx, &domain.PushToken{UserID: userID, Token: token, Platform: platform}); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *notificationUsecase) UnregisterPushToken(ctx context.Context, userID, token string) error {
	if err := u.pushTokenRepo.Delete(ctx, userID, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Push token not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
