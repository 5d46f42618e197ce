package domain

type NotificationType string

const (
	NotificationBookingRequested NotificationType = "BOOKING_REQUESTED"
	NotificationBookingStatus    NotificationType = "BOOKING_STATUS_CHANGED"
	NotificationAgreementIssued  NotificationType = "RENTAL_AGREEMENT_ISSUED"
)

type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}
