package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is one of the four known statuses. The empty
// status (a booking created without one) is not valid as a target.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusDone    PaymentStatus = "done"
)

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusDone
}

type Booking struct {
	ID                int32         `json:"id"`
	UserID            int32         `json:"user_id"`
	PropertyID        int32         `json:"property_id"`
	GovernmentIDProof string        `json:"government_id_proof"`
	BookingStatus     BookingStatus `json:"booking_status"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	PaymentMethod     string        `json:"payment_method"`
	TransactionID     string        `json:"transaction_id,omitempty"`
	// Snapshot of the property at booking time; later property edits do not
	// change what was booked.
	TotalPrice     int32          `json:"total_price"`
	PropertyStatus PropertyStatus `json:"property_status"`
	StartDate      *string        `json:"start_date,omitempty"`
	EndDate        *string        `json:"end_date,omitempty"`
	CreatedOn      string         `json:"created_on"`
	UpdatedOn      string         `json:"updated_on"`
}

// IsActive reports whether the booking is confirmed and paid.
func (b *Booking) IsActive() bool {
	return b.BookingStatus == BookingStatusConfirmed && b.PaymentStatus == PaymentStatusDone
}

// Period returns the booked date range. ok is false for buy bookings and for
// rows whose dates are missing or malformed.
func (b *Booking) Period() (DateRange, bool) {
	if b.StartDate == nil || b.EndDate == nil {
		return DateRange{}, false
	}
	r, err := ParseDateRange(*b.StartDate, *b.EndDate)
	if err != nil {
		return DateRange{}, false
	}
	return r, true
}

// BookingDetails is a booking together with the people and property it refers to.
type BookingDetails struct {
	Booking  *Booking    `json:"booking"`
	Booker   UserContact `json:"user"`
	Property *Property   `json:"property"`
}

// BookingStatusChange is one entry of a booking's status history. Rejected
// attempts are recorded too, with Applied set to false.
type BookingStatusChange struct {
	BookingID       int32         `json:"booking_id" bson:"booking_id"`
	PropertyID      int32         `json:"property_id" bson:"property_id"`
	ActorID         int32         `json:"actor_id" bson:"actor_id"`
	FromStatus      BookingStatus `json:"from_status" bson:"from_status"`
	RequestedStatus BookingStatus `json:"requested_status" bson:"requested_status"`
	ToStatus        BookingStatus `json:"to_status" bson:"to_status"`
	PaymentStatus   PaymentStatus `json:"payment_status" bson:"payment_status"`
	Applied         bool          `json:"applied" bson:"applied"`
	Reason          string        `json:"reason,omitempty" bson:"reason,omitempty"`
	OccurredAt      time.Time     `json:"occurred_at" bson:"occurred_at"`
}
