package service

import (
	"context"
	"fmt"
	"strconv"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

// notifier delivers in-app notifications and emails after a write has
// committed. Failures are logged and never returned to the caller.
type notifier struct {
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func newNotifier(noteRepo repository.NotificationRepository, emailSvc EmailService) *notifier {
	return &notifier{noteRepo: noteRepo, emailSvc: emailSvc}
}

func (n *notifier) save(ctx context.Context, note *domain.Notification) {
	if n.noteRepo == nil {
		return
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to save notification", "userID", note.UserID, "title", note.Title, "error", err)
	}
}

func (n *notifier) bookingRequested(ctx context.Context, owner, booker *domain.User, property *domain.Property, booking *domain.Booking) {
	n.save(ctx, &domain.Notification{
		UserID:  owner.ID,
		Title:   "New booking request",
		Message: fmt.Sprintf("%s requested to book %s.", booker.DisplayName(), property.Name),
		Attributes: map[string]string{
			"type":        string(domain.NotificationBookingRequested),
			"booking_id":  strconv.Itoa(int(booking.ID)),
			"property_id": strconv.Itoa(int(property.ID)),
		},
	})
	if n.emailSvc == nil {
		return
	}
	if err := n.emailSvc.SendBookingRequestNotification(ctx, owner.Email, owner.DisplayName(), booker.DisplayName(), property.Name, booking); err != nil {
		logger.Warn("Failed to send booking request email", "bookingID", booking.ID, "error", err)
	}
}

func (n *notifier) bookingStatusChanged(ctx context.Context, booker *domain.User, property *domain.Property, booking *domain.Booking) {
	n.save(ctx, &domain.Notification{
		UserID:  booker.ID,
		Title:   "Booking status updated",
		Message: fmt.Sprintf("Your booking for %s is now %s.", property.Name, booking.BookingStatus),
		Attributes: map[string]string{
			"type":       string(domain.NotificationBookingStatus),
			"booking_id": strconv.Itoa(int(booking.ID)),
			"status":     string(booking.BookingStatus),
		},
	})
	if n.emailSvc == nil {
		return
	}
	if err := n.emailSvc.SendBookingStatusNotification(ctx, booker.Email, booker.DisplayName(), property.Name, booking.BookingStatus); err != nil {
		logger.Warn("Failed to send booking status email", "bookingID", booking.ID, "error", err)
	}
}

func (n *notifier) agreementIssued(ctx context.Context, booker *domain.User, property *domain.Property, agreement *domain.RentalAgreement) {
	n.save(ctx, &domain.Notification{
		UserID:  booker.ID,
		Title:   "Rental agreement issued",
		Message: fmt.Sprintf("A rental agreement for %s has been issued.", property.Name),
		Attributes: map[string]string{
			"type":         string(domain.NotificationAgreementIssued),
			"booking_id":   strconv.Itoa(int(agreement.BookingID)),
			"agreement_id": strconv.Itoa(int(agreement.ID)),
		},
	})
	if n.emailSvc == nil {
		return
	}
	if err := n.emailSvc.SendRentalAgreementNotification(ctx, booker.Email, booker.DisplayName(), property.Name, agreement); err != nil {
		logger.Warn("Failed to send rental agreement email", "agreementID", agreement.ID, "error", err)
	}
}
