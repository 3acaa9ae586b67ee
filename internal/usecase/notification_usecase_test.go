package usecase_test

import (
	"context"
	"testing"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/internal/usecase"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockNotificationRepo) DeleteAll(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPushTokenRepo struct {
	mock.Mock
}

func (m *MockPushTokenRepo) Upsert(ctx context.Context, token *domain.PushToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockPushTokenRepo) ListByUser(ctx context.Context, userID string) ([]domain.PushToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PushToken), args.Error(1)
}

func (m *MockPushTokenRepo) Delete(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *MockPushTokenRepo) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	args := m.Called(ctx, tokens)
	return args.Get(0).(int64), args.Error(1)
}

type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Push(ctx context.Context, tokens []string, title, body string, data map[string]string) ([]string, error) {
	args := m.Called(ctx, tokens, title, body, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestNotify(t *testing.T) {
	ctx := context.Background()
	event := domain.NewNotification{
		RecipientID: "emp1",
		Message:     "Jane Doe has applied for your job 'Backend Engineer'",
		Category:    domain.CategoryApplication,
		Payload:     map[string]interface{}{"type": domain.PayloadFromCandidate, "id": "cand1"},
	}

	t.Run("stores then pushes and prunes dead tokens", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		tokens := new(MockPushTokenRepo)
		sender := new(MockPushSender)
		uc := usecase.NewNotificationUsecase(repo, tokens, sender, testClock())

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		tokens.On("ListByUser", ctx, "emp1").Return([]domain.PushToken{{Token: "tok-a"}, {Token: "tok-b"}}, nil)
		sender.On("Push", ctx, []string{"tok-a", "tok-b"}, "Application", event.Message,
			mock.MatchedBy(func(data map[string]string) bool {
				return data["type"] == "application" && data["isRead"] == "false" && data["notificationId"] != ""
			})).Return([]string{"tok-b"}, nil)
		tokens.On("DeleteTokens", ctx, []string{"tok-b"}).Return(int64(1), nil)

		n, err := uc.Notify(ctx, event)
		require.NoError(t, err)
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, "emp1", n.UserID)
		assert.False(t, n.IsRead)
		assert.True(t, fixedNow.Equal(n.CreatedAt))

		repo.AssertExpectations(t)
		tokens.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("push failure still returns the stored notification", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		tokens := new(MockPushTokenRepo)
		sender := new(MockPushSender)
		uc := usecase.NewNotificationUsecase(repo, tokens, sender, testClock())

		repo.On("Create", ctx, mock.Anything).Return(nil)
		tokens.On("ListByUser", ctx, "emp1").Return([]domain.PushToken{{Token: "tok-a"}}, nil)
		sender.On("Push", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errBoom)

		n, err := uc.Notify(ctx, event)
		require.NoError(t, err)
		assert.NotNil(t, n)
		tokens.AssertNotCalled(t, "DeleteTokens", mock.Anything, mock.Anything)
	})

	t.Run("no sender configured", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo, nil, nil, testClock())
		repo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := uc.Notify(ctx, event)
		assert.NoError(t, err)
	})

	t.Run("blank message or recipient", func(t *testing.T) {
		uc := usecase.NewNotificationUsecase(new(MockNotificationRepo), nil, nil, testClock())

		_, err := uc.Notify(ctx, domain.NewNotification{RecipientID: "emp1", Message: "  "})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		_, err = uc.Notify(ctx, domain.NewNotification{Message: "hello"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("push title capitalizes the first rune of the category", func(t *testing.T) {
		for category, title := range map[string]string{
			"meeting":  "Meeting",
			"élection": "Élection",
			"ünvan":    "Ünvan",
		} {
			repo := new(MockNotificationRepo)
			tokens := new(MockPushTokenRepo)
			sender := new(MockPushSender)
			uc := usecase.NewNotificationUsecase(repo, tokens, sender, testClock())

			repo.On("Create", ctx, mock.Anything).Return(nil)
			tokens.On("ListByUser", ctx, "emp1").Return([]domain.PushToken{{Token: "tok-a"}}, nil)
			sender.On("Push", ctx, []string{"tok-a"}, title, "hello", mock.Anything).Return(nil, nil)

			_, err := uc.Notify(ctx, domain.NewNotification{RecipientID: "emp1", Message: "hello", Category: category})
			require.NoError(t, err)
			sender.AssertExpectations(t)
		}
	})

	t.Run("category defaults to info", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo, nil, nil, testClock())
		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.Type == domain.CategoryInfo
		})).Return(nil)

		_, err := uc.Notify(ctx, domain.NewNotification{RecipientID: "emp1", Message: "hello"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestNotificationInbox(t *testing.T) {
	ctx := context.Background()

	t.Run("list normalizes paging", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo, nil, nil, testClock())
		repo.On("ListByUser", ctx, "cand1", 10, 0).Return([]domain.Notification{{ID: "n1"}}, int64(11), nil)

		res, err := uc.List(ctx, "cand1", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 10, res.PageSize)
		assert.Equal(t, 2, res.TotalPages)
	})

	t.Run("foreign notifications are not found", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo, nil, nil, testClock())
		repo.On("MarkRead", ctx, "n1", "cand2").Return(domain.ErrNotFound)
		repo.On("Delete", ctx, "n1", "cand2").Return(domain.ErrNotFound)

		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(uc.MarkRead(ctx, "cand2", "n1")))
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(uc.Delete(ctx, "cand2", "n1")))
	})

	t.Run("bulk operations report counts", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo, nil, nil, testClock())
		repo.On("MarkAllRead", ctx, "cand1").Return(int64(3), nil)
		repo.On("DeleteAll", ctx, "cand1").Return(int64(0), nil)

		n, err := uc.MarkAllRead(ctx, "cand1")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		n, err = uc.DeleteAll(ctx, "cand1")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestPushTokens(t *testing.T) {
	ctx := context.Background()
	tokens := new(MockPushTokenRepo)
	uc := usecase.NewNotificationUsecase(new(MockNotificationRepo), tokens, nil, testClock())

	tokens.On("Upsert", ctx, mock.MatchedBy(func(p *domain.PushToken) bool {
		return p.UserID == "cand1" && p.Token == "tok-a" && p.Platform == "web"
	})).Return(nil)
	require.NoError(t, uc.RegisterPushToken(ctx, "cand1", " tok-a ", ""))

	err := uc.RegisterPushToken(ctx, "cand1", "", "ios")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	tokens.On("Delete", ctx, "cand1", "tok-x").Return(domain.ErrNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(uc.UnregisterPushToken(ctx, "cand1", "tok-x")))
	tokens.AssertExpectations(t)
}
