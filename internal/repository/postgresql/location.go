package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) location.LocationRepository {
	return &locationRepositoryImpl{db: db}
}

// GetByID implements location.LocationRepository.
func (l *locationRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, name
		FROM locations
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var loc location.Location
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&loc.ID, &loc.CompanyID, &loc.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, fmt.Errorf("location with id %s: %w", id, location.ErrLocationNotFound)
		}
		return location.Location{}, fmt.Errorf("failed to get location with id %s: %w", id, err)
	}

	return loc, nil
}

// List implements location.LocationRepository.
func (l *locationRepositoryImpl) List(ctx context.Context, companyID string) ([]location.Location, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, company_id, name
		FROM locations
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []location.Location{}
	for rows.Next() {
		var loc location.Location
		if err := rows.Scan(&loc.ID, &loc.CompanyID, &loc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}
