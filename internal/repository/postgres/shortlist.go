package postgres

import (
	"context"
	"time"

	"estatehub-backend/internal/domain"
	"estatehub-backend/internal/logger"
	"estatehub-backend/internal/repository"
)

type shortlistRepository struct {
	db DBTX
}

func NewShortlistRepository(db DBTX) repository.ShortlistRepository {
	return &shortlistRepository{db: db}
}

func (r *shortlistRepository) Add(ctx context.Context, userID, propertyID int32) (bool, error) {
	query := `INSERT INTO shortlisted_properties (user_id, property_id, created_on) VALUES ($1, $2, $3)
	          ON CONFLICT ON CONSTRAINT shortlisted_properties_unique DO NOTHING`
	logger.DatabaseCall(ctx, "INSERT", "shortlisted_properties", "userID", userID, "propertyID", propertyID)
	res, err := r.db.ExecContext(ctx, query, userID, propertyID, time.Now())
	if err != nil {
		logger.DatabaseResult(ctx, "INSERT", 0, err, "propertyID", propertyID)
		return false, translateError(err)
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult(ctx, "INSERT", n, err, "propertyID", propertyID)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *shortlistRepository) Remove(ctx context.Context, userID, propertyID int32) error {
	query := `DELETE FROM shortlisted_properties WHERE user_id = $1 AND property_id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, propertyID)
	if err != nil {
		return translateError(err)
	}
	return expectOneRow(res)
}

func (r *shortlistRepository) ListByUser(ctx context.Context, userID int32) ([]domain.ShortlistedProperty, error) {
	query := `SELECT p.id, p.owner_id, p.name, p.property_type, p.address, p.city, p.state, p.country, p.zip_code, p.floor,
	          p.description, p.bhk_type, p.furnishing, p.preferred_tenants, p.property_status, p.availability_status,
	          p.available_from, p.amenities, p.base_price, p.amenity_price, p.maintenance_price, p.total_price, p.created_on,
	          p.updated_on, u.id, u.firstname, u.lastname, u.email, u.mobile_number
	          FROM shortlisted_properties s
	          JOIN properties p ON p.id = s.property_id
	          JOIN users u ON u.id = p.owner_id
	          WHERE s.user_id = $1
	          ORDER BY s.created_on DESC, s.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ShortlistedProperty
	for rows.Next() {
		var entry domain.ShortlistedProperty
		var owner domain.UserContact
		p, err := scanProperty(shortlistRow{rows: rows, owner: &owner})
		if err != nil {
			return nil, err
		}
		entry.Property = p
		entry.Owner = owner
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// shortlistRow appends the owner contact columns to a property scan.
type shortlistRow struct {
	rows  rowScanner
	owner *domain.UserContact
}

func (s shortlistRow) Scan(dest ...any) error {
	dest = append(dest, &s.owner.ID, &s.owner.Firstname, &s.owner.Lastname, &s.owner.Email, &s.owner.MobileNumber)
	return s.rows.Scan(dest...)
}
