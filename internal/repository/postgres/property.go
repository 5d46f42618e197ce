package postgres

import (
	"context"
	"database/sql"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"

	"github.com/lib/pq"
)

type propertyRepository struct {
	db DBTX
}

func NewPropertyRepository(db DBTX) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, owner_id, name, property_type, address, city, state, country, zip_code, floor, description, bhk_type,
	furnishing, preferred_tenants, property_status, availability_status, available_from, amenities, base_price, amenity_price,
	maintenance_price, total_price, created_on, updated_on`

func scanProperty(row rowScanner) (*domain.Property, error) {
	p := &domain.Property{}
	var availableFrom sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.PropertyType, &p.Address, &p.City, &p.State, &p.Country, &p.ZipCode, &p.Floor,
		&p.Description, &p.BHKType, &p.Furnishing, &p.PreferredTenants, &p.PropertyStatus, &p.AvailabilityStatus, &availableFrom,
		pq.Array(&p.Amenities), &p.BasePrice, &p.AmenityPrice, &p.MaintenancePrice, &p.TotalPrice, &createdOn, &updatedOn)
	if err != nil {
		return nil, translateError(err)
	}
	if d := nullDateString(availableFrom); d != nil {
		p.AvailableFrom = *d
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	p.CreatedOn = formatDate(createdOn)
	p.UpdatedOn = formatDate(updatedOn)
	return p, nil
}

func (r *propertyRepository) scanAll(rows *sql.Rows) ([]domain.Property, error) {
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (owner_id, name, property_type, address, city, state, country, zip_code, floor, description,
	          bhk_type, furnishing, preferred_tenants, property_status, availability_status, available_from, amenities, base_price,
	          amenity_price, maintenance_price, total_price, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	          RETURNING id`
	logger.DatabaseCall(ctx, "INSERT", "properties", "ownerID", p.OwnerID)

	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, p.OwnerID, p.Name, p.PropertyType, p.Address, p.City, p.State, p.Country, p.ZipCode,
		p.Floor, p.Description, p.BHKType, p.Furnishing, p.PreferredTenants, string(p.PropertyStatus), string(p.AvailabilityStatus),
		dateArg(&p.AvailableFrom), pq.Array(p.Amenities), p.BasePrice, p.AmenityPrice, p.MaintenancePrice, p.TotalPrice,
		now, now).Scan(&p.ID)
	logger.DatabaseResult(ctx, "INSERT", 1, err, "propertyID", p.ID)
	if err != nil {
		return translateError(err)
	}
	p.CreatedOn = formatDate(now)
	p.UpdatedOn = p.CreatedOn
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(r.db.QueryRowContext(ctx, query, id))
}

func (r *propertyRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 FOR UPDATE`
	logger.DatabaseCall(ctx, "SELECT FOR UPDATE", "properties", "propertyID", id)
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	logger.DatabaseResult(ctx, "SELECT FOR UPDATE", 1, err, "propertyID", id)
	return p, err
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties SET name=$1, property_type=$2, address=$3, city=$4, state=$5, country=$6, zip_code=$7, floor=$8,
	          description=$9, bhk_type=$10, furnishing=$11, preferred_tenants=$12, property_status=$13, availability_status=$14,
	          available_from=$15, amenities=$16, base_price=$17, amenity_price=$18, maintenance_price=$19, total_price=$20,
	          updated_on=$21
	          WHERE id=$22`
	logger.DatabaseCall(ctx, "UPDATE", "properties", "propertyID", p.ID)

	now := time.Now()
	res, err := r.db.ExecContext(ctx, query, p.Name, p.PropertyType, p.Address, p.City, p.State, p.Country, p.ZipCode, p.Floor,
		p.Description, p.BHKType, p.Furnishing, p.PreferredTenants, string(p.PropertyStatus), string(p.AvailabilityStatus),
		dateArg(&p.AvailableFrom), pq.Array(p.Amenities), p.BasePrice, p.AmenityPrice, p.MaintenancePrice, p.TotalPrice, now, p.ID)
	if err != nil {
		err = translateError(err)
		logger.DatabaseResult(ctx, "UPDATE", 0, err, "propertyID", p.ID)
		return err
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	logger.DatabaseResult(ctx, "UPDATE", 1, nil, "propertyID", p.ID)
	p.UpdatedOn = formatDate(now)
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int32) error {
	query := `DELETE FROM properties WHERE id = $1`
	logger.DatabaseCall(ctx, "DELETE", "properties", "propertyID", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult(ctx, "DELETE", 0, err, "propertyID", id)
		return translateError(err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	logger.DatabaseResult(ctx, "DELETE", 1, nil, "propertyID", id)
	return nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}

func (r *propertyRepository) ListAvailable(ctx context.Context, status domain.PropertyStatus) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties
	          WHERE property_status = $1 AND availability_status = 'available'
	          ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	return r.scanAll(rows)
}
