package domain

type RentalAgreement struct {
	ID              int32   `json:"id"`
	PropertyID      int32   `json:"property_id"`
	BookingID       int32   `json:"booking_id"`
	SecurityDeposit *int32  `json:"security_deposit,omitempty"`
	LeaseDuration   *string `json:"lease_duration,omitempty"`
	// BookingConfirmation is recorded as issued and is independent of the
	// booking's live status.
	BookingConfirmation BookingStatus `json:"booking_confirmation"`
	CreatedOn           string        `json:"created_on"`
}

// AgreementBundle is returned to the owner right after issuing an agreement.
type AgreementBundle struct {
	Agreement *RentalAgreement `json:"rental_agreement"`
	Property  PropertySummary  `json:"property"`
	Owner     UserContact      `json:"owner"`
	Booker    UserContact      `json:"user"`
}
