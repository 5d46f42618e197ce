package jobs

import (
	"context"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
)

// ExpireStaleBookings cancels bookings that stayed pending and unpaid longer
// than the configured TTL. It does nothing unless booking.pending_ttl_hours
// is set.
func (jr *JobRunner) ExpireStaleBookings() {
	if !jr.config.ExpireStaleBookingsEnabled() {
		logger.Debug("Stale booking expiry disabled, skipping")
		return
	}
	jr.runWithRecovery("ExpireStaleBookings", func() {
		ctx := context.Background()
		now := jr.now()
		cutoff := now.Add(-jr.config.PendingTTL())

		query := `
			UPDATE bookings
			SET booking_status = 'cancelled',
			    updated_on = NOW()
			WHERE booking_status = 'pending'
			  AND payment_status = 'pending'
			  AND created_on < $1
			RETURNING id, property_id
		`

		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale bookings", "error", err)
			return
		}
		defer rows.Close()

		var expired []domain.BookingStatusChange
		for rows.Next() {
			change := domain.BookingStatusChange{
				FromStatus:      domain.BookingStatusPending,
				RequestedStatus: domain.BookingStatusCancelled,
				ToStatus:        domain.BookingStatusCancelled,
				PaymentStatus:   domain.PaymentStatusPending,
				Applied:         true,
				Reason:          "expired unpaid",
				OccurredAt:      now,
			}
			if err := rows.Scan(&change.BookingID, &change.PropertyID); err != nil {
				logger.Error("Failed to scan expired booking", "error", err)
				continue
			}
			expired = append(expired, change)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired bookings", "error", err)
			return
		}

		logger.Info("Expired stale bookings", "count", len(expired), "cutoff", cutoff)

		for i := range expired {
			if err := jr.history.Append(ctx, &expired[i]); err != nil {
				logger.Warn("Failed to record expiry in status history", "booking_id", expired[i].BookingID, "error", err)
				continue
			}
			logger.Debug("Expired booking", "booking_id", expired[i].BookingID, "property_id", expired[i].PropertyID)
		}
	})
}
