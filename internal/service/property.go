package service

import (
	"context"
	"fmt"
	"strings"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

// PropertyInput is a full listing as submitted by its owner. Edits replace
// every field.
type PropertyInput struct {
	Name               string                    `json:"name"`
	PropertyType       string                    `json:"type"`
	Address            string                    `json:"address"`
	City               string                    `json:"city"`
	State              string                    `json:"state"`
	Country            string                    `json:"country"`
	ZipCode            string                    `json:"zip_code"`
	Floor              string                    `json:"floor"`
	Description        string                    `json:"description"`
	BHKType            string                    `json:"bhk_type"`
	Furnishing         string                    `json:"furnishing"`
	PreferredTenants   string                    `json:"preferred_tenants"`
	PropertyStatus     domain.PropertyStatus     `json:"property_status"`
	AvailabilityStatus domain.AvailabilityStatus `json:"availability_status"`
	AvailableFrom      string                    `json:"available_from"`
	Amenities          []string                  `json:"amenities"`
	BasePrice          int32                     `json:"base_price"`
	AmenityPrice       int32                     `json:"amenity_price"`
	MaintenancePrice   int32                     `json:"maintenance_price"`
	TotalPrice         int32                     `json:"total_price"`
}

var floors = []string{"ground floor", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

var propertyUniqueFields = map[string]string{
	"properties_address_unique": "address",
}

type propertyService struct {
	tx           repository.Transactor
	propertyRepo repository.PropertyRepository
}

func NewPropertyService(tx repository.Transactor, propertyRepo repository.PropertyRepository) PropertyService {
	return &propertyService{tx: tx, propertyRepo: propertyRepo}
}

func (s *propertyService) GetProperty(ctx context.Context, id int32) (*domain.Property, error) {
	p, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("property", err)
	}
	return p, nil
}

// ListProperties returns the caller's own listings for owners, and the
// available listings they can book for tenants and buyers.
func (s *propertyService) ListProperties(ctx context.Context, caller domain.Caller) ([]domain.Property, error) {
	var (
		properties []domain.Property
		err        error
	)
	if caller.Role == domain.UserRoleOwner {
		properties, err = s.propertyRepo.ListByOwner(ctx, caller.UserID)
	} else if caller.Role.CanBook() {
		properties, err = s.propertyRepo.ListAvailable(ctx, caller.Role.BookableStatus())
	} else {
		return nil, fmt.Errorf("%w: unknown role %q", ErrForbidden, caller.Role)
	}
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	return properties, nil
}

func (s *propertyService) CreateProperty(ctx context.Context, caller domain.Caller, in PropertyInput) (*domain.Property, error) {
	logger.EnterMethod(ctx, "propertyService.CreateProperty", "ownerID", caller.UserID)

	if caller.Role != domain.UserRoleOwner {
		err := fmt.Errorf("%w: only owners can list properties", ErrForbidden)
		logger.ExitMethodWithError(ctx, "propertyService.CreateProperty", err)
		return nil, err
	}
	if err := validateProperty(&in); err != nil {
		logger.ExitMethodWithError(ctx, "propertyService.CreateProperty", err, "reason", "validation")
		return nil, err
	}

	p := &domain.Property{OwnerID: caller.UserID}
	applyPropertyInput(p, in)
	if err := s.propertyRepo.Create(ctx, p); err != nil {
		err = duplicateAddress(err)
		logger.ExitMethodWithError(ctx, "propertyService.CreateProperty", err)
		return nil, err
	}

	logger.ExitMethod(ctx, "propertyService.CreateProperty", "propertyID", p.ID)
	return p, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, caller domain.Caller, id int32, in PropertyInput) (*domain.Property, error) {
	logger.EnterMethod(ctx, "propertyService.UpdateProperty", "propertyID", id, "ownerID", caller.UserID)

	if err := validateProperty(&in); err != nil {
		logger.ExitMethodWithError(ctx, "propertyService.UpdateProperty", err, "reason", "validation")
		return nil, err
	}

	var property *domain.Property
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		p, err := ownedProperty(ctx, repos.Properties, caller, id)
		if err != nil {
			return err
		}
		applyPropertyInput(p, in)
		if err := repos.Properties.Update(ctx, p); err != nil {
			return duplicateAddress(err)
		}
		property = p
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "propertyService.UpdateProperty", err, "propertyID", id)
		return nil, err
	}

	logger.ExitMethod(ctx, "propertyService.UpdateProperty", "propertyID", id)
	return property, nil
}

// DeleteProperty removes a listing together with its bookings, rental
// agreements and shortlist entries.
func (s *propertyService) DeleteProperty(ctx context.Context, caller domain.Caller, id int32) error {
	logger.EnterMethod(ctx, "propertyService.DeleteProperty", "propertyID", id, "ownerID", caller.UserID)

	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := ownedProperty(ctx, repos.Properties, caller, id); err != nil {
			return err
		}
		return notFound("property", repos.Properties.Delete(ctx, id))
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "propertyService.DeleteProperty", err, "propertyID", id)
		return err
	}

	logger.ExitMethod(ctx, "propertyService.DeleteProperty", "propertyID", id)
	return nil
}

// ownedProperty locks the property and hides it from anyone but its owner.
func ownedProperty(ctx context.Context, properties repository.PropertyRepository, caller domain.Caller, id int32) (*domain.Property, error) {
	p, err := properties.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, notFound("property", err)
	}
	if caller.Role != domain.UserRoleOwner || p.OwnerID != caller.UserID {
		return nil, fmt.Errorf("property %w or you are not authorized", ErrNotFound)
	}
	return p, nil
}

func duplicateAddress(err error) error {
	if field, ok := uniqueField(err, propertyUniqueFields); ok {
		return fmt.Errorf("%w: this %s is already associated with another property", ErrConflict, field)
	}
	return err
}

func validateProperty(in *PropertyInput) error {
	v := &ValidationError{}

	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Description = strings.TrimSpace(in.Description)

	checkVar(v, "name", in.Name, "required", "name is required")
	checkVar(v, "address", in.Address, "required", "address is required")
	checkVar(v, "description", in.Description, "required", "description is required")
	checkVar(v, "city", in.City, "required,alphaspace", "city is required and may contain letters only")
	checkVar(v, "state", in.State, "required,alphaspace", "state is required and may contain letters only")
	checkVar(v, "country", in.Country, "required,alphaspace", "country is required and may contain letters only")
	checkVar(v, "zip_code", in.ZipCode, "required,numeric,min=5,max=6", "zip code must be 5 or 6 digits")

	if !oneOf(in.PropertyType, domain.PropertyTypes) {
		v.Add("type", "type must be one of "+strings.Join(domain.PropertyTypes, ", "))
	}
	if in.Floor != "" && !oneOf(in.Floor, floors) {
		v.Add("floor", "floor must be ground floor or 1 to 10")
	}
	if !oneOf(in.BHKType, domain.BHKTypes) {
		v.Add("bhk_type", "bhk type must be one of "+strings.Join(domain.BHKTypes, ", "))
	}
	if !oneOf(in.Furnishing, domain.FurnishingTypes) {
		v.Add("furnishing", "furnishing must be one of "+strings.Join(domain.FurnishingTypes, ", "))
	}
	if !in.PropertyStatus.IsValid() {
		v.Add("property_status", "property status must be rent or buy")
	}
	if !in.AvailabilityStatus.IsValid() {
		v.Add("availability_status", "availability status must be available or not available")
	}
	if in.AvailableFrom == "" {
		v.Add("available_from", "available from date is required")
	} else if _, err := domain.ParseDate(in.AvailableFrom); err != nil {
		v.Add("available_from", "available from must be YYYY-MM-DD")
	}
	if len(in.Amenities) == 0 {
		v.Add("amenities", "at least one amenity is required")
	}
	for _, a := range in.Amenities {
		if !oneOf(a, domain.Amenities) {
			v.Add("amenities", fmt.Sprintf("unknown amenity %q", a))
		}
	}

	switch in.PropertyStatus {
	case domain.PropertyStatusRent:
		if !oneOf(in.PreferredTenants, domain.PreferredTenants) {
			v.Add("preferred_tenants", "preferred tenants must be one of "+strings.Join(domain.PreferredTenants, ", "))
		}
		if in.BasePrice <= 0 {
			v.Add("base_price", "base price must be positive")
		}
		if in.AmenityPrice < 0 {
			v.Add("amenity_price", "amenity price cannot be negative")
		}
		if in.MaintenancePrice < 0 {
			v.Add("maintenance_price", "maintenance price cannot be negative")
		}
	case domain.PropertyStatusBuy:
		if in.TotalPrice <= 0 {
			v.Add("total_price", "total price must be positive")
		}
	}
	return v.OrNil()
}

// applyPropertyInput copies a validated listing onto p. Rent prices are the
// sum of their parts; buy listings carry only the total.
func applyPropertyInput(p *domain.Property, in PropertyInput) {
	p.Name = in.Name
	p.PropertyType = in.PropertyType
	p.Address = in.Address
	p.City = in.City
	p.State = in.State
	p.Country = in.Country
	p.ZipCode = in.ZipCode
	p.Floor = in.Floor
	p.Description = in.Description
	p.BHKType = in.BHKType
	p.Furnishing = in.Furnishing
	p.PropertyStatus = in.PropertyStatus
	p.AvailabilityStatus = in.AvailabilityStatus
	p.AvailableFrom = in.AvailableFrom
	p.Amenities = in.Amenities

	if in.PropertyStatus == domain.PropertyStatusRent {
		p.PreferredTenants = in.PreferredTenants
		p.BasePrice, p.AmenityPrice, p.MaintenancePrice = in.BasePrice, in.AmenityPrice, in.MaintenancePrice
		p.TotalPrice = in.BasePrice + in.AmenityPrice + in.MaintenancePrice
		return
	}
	p.PreferredTenants = ""
	p.BasePrice, p.AmenityPrice, p.MaintenancePrice = 0, 0, 0
	p.TotalPrice = in.TotalPrice
}
