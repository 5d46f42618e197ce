package domain

// StatusChange is the outcome of evaluating a requested booking status
// against the booking's current booking and payment status.
type StatusChange struct {
	Next    BookingStatus
	Allowed bool
	Reason  string
}

func allow(next BookingStatus) StatusChange {
	return StatusChange{Next: next, Allowed: true}
}

func deny(current BookingStatus, reason string) StatusChange {
	return StatusChange{Next: current, Reason: reason}
}

// ResolveStatusChange is the single source of truth for owner-driven booking
// status transitions. It has no side effects.
//
// Confirmed is only reachable from pending with payment done, and no owner
// request moves a booking out of confirmed.
func ResolveStatusChange(current BookingStatus, payment PaymentStatus, requested BookingStatus) StatusChange {
	switch requested {
	case BookingStatusConfirmed:
		switch {
		case current == BookingStatusConfirmed:
			return deny(current, "Booking is already confirmed.")
		case current != BookingStatusPending:
			return deny(current, "Booking must be pending to confirm.")
		case payment != PaymentStatusDone:
			return deny(current, "Payment must be done before confirming the booking.")
		}
		return allow(BookingStatusConfirmed)

	case BookingStatusRejected:
		if current == BookingStatusConfirmed {
			return deny(current, "Confirmed booking cannot be rejected.")
		}
		return allow(BookingStatusRejected)

	case BookingStatusCancelled:
		if current == BookingStatusConfirmed {
			return deny(current, "Confirmed booking cannot be cancelled directly.")
		}
		return allow(BookingStatusCancelled)

	case BookingStatusPending:
		switch {
		case current == BookingStatusConfirmed:
			return deny(current, "Confirmed booking cannot be set to pending.")
		case current == BookingStatusCancelled:
			return deny(current, "Cancelled booking cannot be set to pending.")
		case payment == PaymentStatusDone && current != BookingStatusPending:
			return allow(BookingStatusPending)
		case payment == PaymentStatusPending:
			// An unpaid booking sent back to pending is cancelled instead.
			return allow(BookingStatusCancelled)
		}
		return deny(current, "Booking cannot be set to pending.")
	}
	return deny(current, "Invalid booking status provided.")
}
