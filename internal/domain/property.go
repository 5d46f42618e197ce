package domain

type PropertyStatus string

const (
	PropertyStatusRent PropertyStatus = "rent"
	PropertyStatusBuy  PropertyStatus = "buy"
)

func (s PropertyStatus) IsValid() bool {
	return s == PropertyStatusRent || s == PropertyStatusBuy
}

type AvailabilityStatus string

const (
	AvailabilityAvailable    AvailabilityStatus = "available"
	AvailabilityNotAvailable AvailabilityStatus = "not available"
)

func (s AvailabilityStatus) IsValid() bool {
	return s == AvailabilityAvailable || s == AvailabilityNotAvailable
}

// Listing attributes accepted by the catalog.
var (
	PropertyTypes    = []string{"community", "apartment", "individual"}
	BHKTypes         = []string{"3BHK", "2BHK", "1BHK", "1RK"}
	FurnishingTypes  = []string{"fully furnished", "semi-furnished", "unfurnished"}
	PreferredTenants = []string{"anyone", "bachelors", "family"}
	Amenities        = []string{
		"swimming pool", "gym", "play area", "Lift", "Internet Services", "Air Conditioner", "Club House",
		"Intercom", "Fire Safety", "Gas Pipeline", "House Keeping", "Power Backup", "Visitor Parking",
	}
)

type Property struct {
	ID                 int32              `json:"id"`
	OwnerID            int32              `json:"owner_id"`
	Name               string             `json:"name"`
	PropertyType       string             `json:"type"`
	Address            string             `json:"address"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Country            string             `json:"country"`
	ZipCode            string             `json:"zip_code"`
	Floor              string             `json:"floor,omitempty"`
	Description        string             `json:"description"`
	BHKType            string             `json:"bhk_type"`
	Furnishing         string             `json:"furnishing"`
	PreferredTenants   string             `json:"preferred_tenants,omitempty"`
	PropertyStatus     PropertyStatus     `json:"property_status"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	AvailableFrom      string             `json:"available_from"`
	Amenities          []string           `json:"amenities"`
	BasePrice          int32              `json:"base_price,omitempty"`
	AmenityPrice       int32              `json:"amenity_price,omitempty"`
	MaintenancePrice   int32              `json:"maintenance_price,omitempty"`
	TotalPrice         int32              `json:"total_price"`
	CreatedOn          string             `json:"created_on"`
	UpdatedOn          string             `json:"updated_on"`
}

func (p *Property) IsAvailable() bool {
	return p.AvailabilityStatus == AvailabilityAvailable
}

// PropertySummary is returned alongside rental agreements.
type PropertySummary struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalPrice int32  `json:"total_price"`
}

func (p *Property) Summary() PropertySummary {
	return PropertySummary{
		ID:         p.ID,
		Name:       p.Name,
		Address:    p.Address,
		TotalPrice: p.TotalPrice,
	}
}

// ShortlistedProperty is a property saved by a tenant or buyer, with the
// owner's contact details.
type ShortlistedProperty struct {
	Property *Property   `json:"property"`
	Owner    UserContact `json:"owner"`
}
