package directory

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
)

// DirectoryService exposes the read-only lists the reconciliation form is built from.
type DirectoryService interface {
	ListEmployeeProfiles(ctx context.Context) ([]employee.ProfileResponse, error)
	ListShifts(ctx context.Context) ([]shift.ShiftResponse, error)
	ListLocations(ctx context.Context) ([]location.LocationResponse, error)
}

type directoryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
	locationRepo location.LocationRepository
}

func NewDirectoryService(
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	locationRepo location.LocationRepository,
) DirectoryService {
	return &directoryServiceImpl{
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		locationRepo: locationRepo,
	}
}

// ==================== EMPLOYEES ====================

func (s *directoryServiceImpl) ListEmployeeProfiles(ctx context.Context) ([]employee.ProfileResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := s.employeeRepo.ListProfiles(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee profiles: %w", err)
	}

	responses := make([]employee.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, employee.NewProfileResponse(p))
	}
	return responses, nil
}

// ==================== SHIFTS ====================

func (s *directoryServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.List(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.NewShiftResponse(sh))
	}
	return responses, nil
}

// ==================== LOCATIONS ====================

func (s *directoryServiceImpl) ListLocations(ctx context.Context) ([]location.LocationResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.List(ctx, actor.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, location.LocationResponse{ID: loc.ID, Name: loc.Name})
	}
	return responses, nil
}
