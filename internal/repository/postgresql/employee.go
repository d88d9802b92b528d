package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetProfile implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetProfile(ctx context.Context, id string, companyID string) (employee.Profile, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, full_name, has_registered_face, shift_id, employment_status
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var p employee.Profile
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.FullName, &p.HasRegisteredFace, &p.AssignedShiftID, &p.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, fmt.Errorf("employee with id %s: %w", id, employee.ErrEmployeeNotFound)
		}
		return employee.Profile{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return p, nil
}

// ListProfiles implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListProfiles(ctx context.Context, companyID string) ([]employee.Profile, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, full_name, has_registered_face, shift_id, employment_status
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	profiles := []employee.Profile{}
	for rows.Next() {
		var p employee.Profile
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.FullName, &p.HasRegisteredFace, &p.AssignedShiftID, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return profiles, nil
}
