package domain

type UserRole string

const (
	UserRoleOwner  UserRole = "owner"
	UserRoleTenant UserRole = "tenant"
	UserRoleBuyer  UserRole = "buyer"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleOwner || r == UserRoleTenant || r == UserRoleBuyer
}

// CanBook reports whether the role is allowed to place bookings.
func (r UserRole) CanBook() bool {
	return r == UserRoleTenant || r == UserRoleBuyer
}

// BookableStatus returns the property status a booking role may book.
func (r UserRole) BookableStatus() PropertyStatus {
	switch r {
	case UserRoleTenant:
		return PropertyStatusRent
	case UserRoleBuyer:
		return PropertyStatusBuy
	}
	return ""
}

type User struct {
	ID           int32    `json:"id"`
	Firstname    string   `json:"firstname"`
	Lastname     string   `json:"lastname"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	MobileNumber string   `json:"mobile_number"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	ZipCode      string   `json:"zip_code"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	CreatedOn    string   `json:"created_on"`
	UpdatedOn    string   `json:"updated_on"`
}

// UserContact is the part of a user shown to the other side of a booking.
type UserContact struct {
	ID           int32  `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
}

func (u *User) Contact() UserContact {
	return UserContact{
		ID:           u.ID,
		Firstname:    u.Firstname,
		Lastname:     u.Lastname,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
	}
}

// DisplayName is used in notifications and emails.
func (u *User) DisplayName() string {
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}

// Caller identifies the authenticated user invoking an operation.
type Caller struct {
	UserID int32
	Role   UserRole
}
