package mongodb

import (
	"context"
	"fmt"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionStatusHistory = "booking_status_history"

const operationTimeout = 5 * time.Second

// Connect opens a client and verifies the deployment is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

type statusHistoryRepository struct {
	collection *mongo.Collection
}

func NewStatusHistoryRepository(client *mongo.Client, database string) repository.StatusHistoryRepository {
	return &statusHistoryRepository{
		collection: client.Database(database).Collection(CollectionStatusHistory),
	}
}

func (r *statusHistoryRepository) Append(ctx context.Context, change *domain.BookingStatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	logger.ExternalServiceCall(ctx, "mongodb", "InsertOne", "collection", CollectionStatusHistory, "bookingID", change.BookingID)
	_, err := r.collection.InsertOne(ctx, change)
	logger.ExternalServiceResult(ctx, "mongodb", "InsertOne", err, "bookingID", change.BookingID)
	if err != nil {
		return fmt.Errorf("failed to insert status change: %w", err)
	}
	return nil
}

func (r *statusHistoryRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.BookingStatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.D{{Key: "booking_id", Value: bookingID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer cursor.Close(ctx)

	changes := []domain.BookingStatusChange{}
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, fmt.Errorf("failed to decode status history: %w", err)
	}
	return changes, nil
}

// NoopStatusHistoryRepository is used when no mongo deployment is configured.
type NoopStatusHistoryRepository struct{}

func (NoopStatusHistoryRepository) Append(ctx context.Context, change *domain.BookingStatusChange) error {
	logger.Debug("Status history disabled, dropping change", "bookingID", change.BookingID, "to", change.ToStatus)
	return nil
}

func (NoopStatusHistoryRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.BookingStatusChange, error) {
	return []domain.BookingStatusChange{}, nil
}
