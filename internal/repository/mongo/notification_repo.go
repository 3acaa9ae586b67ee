// Package mongo provides MongoDB-backed notification persistence.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/sakibmtatva/online-job-portal-be/internal/domain"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notificationCollection = "notifications"

type notificationRepo struct {
	collection *mongo.Collection
}

// NewNotificationRepository stores notifications as documents keyed by the
// notification id, with an index serving the per-user newest-first listing.
func NewNotificationRepository(db *mongo.Database) domain.NotificationRepository {
	collection := db.Collection(notificationCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Log.Warn("failed to create notification index", "error", err)
	}

	return &notificationRepo{collection: collection}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if _, err := r.collection.InsertOne(ctx, n); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: notification %s", domain.ErrDuplicate, n.ID)
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Notification, int64, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode notifications: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	return out, total, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *notificationRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) DeleteAll(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete notifications: %w", err)
	}
	return result.DeletedCount, nil
}

