package mongodb_test

import (
	"context"
	"testing"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/repository/mongodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStatusHistoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Append", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := mongodb.NewStatusHistoryRepository(mt.Client, "estatehub")
		err := repo.Append(context.Background(), &domain.BookingStatusChange{
			BookingID:       5,
			PropertyID:      7,
			ActorID:         1,
			FromStatus:      domain.BookingStatusPending,
			RequestedStatus: domain.BookingStatusConfirmed,
			ToStatus:        domain.BookingStatusConfirmed,
			PaymentStatus:   domain.PaymentStatusDone,
			Applied:         true,
			OccurredAt:      time.Now(),
		})
		assert.NoError(t, err)
	})

	mt.Run("AppendFails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		repo := mongodb.NewStatusHistoryRepository(mt.Client, "estatehub")
		err := repo.Append(context.Background(), &domain.BookingStatusChange{BookingID: 5})
		assert.Error(t, err)
		assert.True(t, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("ListByBooking", func(mt *mtest.T) {
		occurred := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		ns := "estatehub." + mongodb.CollectionStatusHistory
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "booking_id", Value: int32(5)},
				{Key: "property_id", Value: int32(7)},
				{Key: "actor_id", Value: int32(1)},
				{Key: "from_status", Value: "pending"},
				{Key: "requested_status", Value: "confirmed"},
				{Key: "to_status", Value: "pending"},
				{Key: "payment_status", Value: "pending"},
				{Key: "applied", Value: false},
				{Key: "reason", Value: "Payment must be done before confirming the booking."},
				{Key: "occurred_at", Value: occurred},
			},
		))

		repo := mongodb.NewStatusHistoryRepository(mt.Client, "estatehub")
		changes, err := repo.ListByBooking(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, changes, 1)
		assert.Equal(t, int32(5), changes[0].BookingID)
		assert.False(t, changes[0].Applied)
		assert.Equal(t, domain.BookingStatusPending, changes[0].ToStatus)
		assert.True(t, occurred.Equal(changes[0].OccurredAt))
	})
}

func TestNoopStatusHistoryRepository(t *testing.T) {
	var repo mongodb.NoopStatusHistoryRepository
	assert.NoError(t, repo.Append(context.Background(), &domain.BookingStatusChange{BookingID: 1}))
	changes, err := repo.ListByBooking(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, changes)
}
