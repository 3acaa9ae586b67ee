package usecase

import (
	"context"
	"errors"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/email"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
)

// notifyQuietly emits an in-app notification for a workflow event. The
// triggering operation has already committed, so failures are only logged.
func notifyQuietly(ctx context.Context, notifier domain.NotificationUsecase, n domain.NewNotification) {
	if notifier == nil {
		return
	}
	if _, err := notifier.Notify(ctx, n); err != nil {
		logger.Log.Warn("notification not created",
			"recipient", n.RecipientID,
			"category", n.Category,
			"error", err,
		)
	}
}

// mailQuietly renders and sends a workflow email; failures are logged.
func mailQuietly(ctx context.Context, mailer domain.Mailer, to string, render func() (string, string, error)) {
	if mailer == nil || to == "" {
		return
	}
	subject, body, err := render()
	if err != nil {
		logger.Log.Error("email template failed", "error", err)
		return
	}
	if err := mailer.Send(ctx, to, subject, body); err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			logger.Log.Debug("email skipped, provider not configured", "subject", subject)
			return
		}
		logger.Log.Warn("email delivery failed", "subject", subject, "error", err)
	}
}
