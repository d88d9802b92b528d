package hrisapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
)

type profileDTO struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	FullName          string  `json:"full_name"`
	HasRegisteredFace bool    `json:"has_registered_face"`
	AssignedShiftID   *string `json:"assigned_shift_id"`
	Status            string  `json:"status"`
}

func (d profileDTO) toEntity() employee.Profile {
	return employee.Profile{
		ID:                d.ID,
		CompanyID:         d.CompanyID,
		FullName:          d.FullName,
		HasRegisteredFace: d.HasRegisteredFace,
		AssignedShiftID:   d.AssignedShiftID,
		Status:            employee.EmploymentStatus(d.Status),
	}
}

type employeeRepository struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.EmployeeRepository {
	return &employeeRepository{client: client}
}

// GetProfile implements employee.EmployeeRepository.
func (r *employeeRepository) GetProfile(ctx context.Context, id string, companyID string) (employee.Profile, error) {
	resp, err := r.client.request(ctx).
		SetPathParam("id", id).
		SetQueryParam("company_id", companyID).
		Get("/employees/profiles/{id}")

	var dto profileDTO
	if err := r.client.decode(resp, err, &dto); err != nil {
		if errors.Is(err, errNotFound) {
			return employee.Profile{}, fmt.Errorf("employee with id %s: %w", id, employee.ErrEmployeeNotFound)
		}
		return employee.Profile{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return dto.toEntity(), nil
}

// ListProfiles implements employee.EmployeeRepository.
func (r *employeeRepository) ListProfiles(ctx context.Context, companyID string) ([]employee.Profile, error) {
	resp, err := r.client.request(ctx).
		SetQueryParam("company_id", companyID).
		Get("/employees/profiles")

	var dtos []profileDTO
	if err := r.client.decode(resp, err, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	profiles := make([]employee.Profile, 0, len(dtos))
	for _, d := range dtos {
		profiles = append(profiles, d.toEntity())
	}
	return profiles, nil
}

type shiftDayDTO struct {
	DayOfWeek    int    `json:"day_of_week"` // ISO, 1 = Monday
	ClockInTime  string `json:"clock_in_time"`
	ClockOutTime string `json:"clock_out_time"`
}

type shiftDTO struct {
	ID        string        `json:"id"`
	CompanyID string        `json:"company_id"`
	Name      string        `json:"name"`
	Days      []shiftDayDTO `json:"days"`
}

func (d shiftDTO) toEntity() (shift.Shift, error) {
	sh := shift.Shift{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		Days:      make(map[time.Weekday]shift.Day, len(d.Days)),
	}
	for _, day := range d.Days {
		weekday := time.Weekday(day.DayOfWeek % 7)
		if day.DayOfWeek < 1 || day.DayOfWeek > 7 || !shift.IsWorkingWeekday(weekday) {
			return shift.Shift{}, fmt.Errorf("shift %s day %d: %w", d.ID, day.DayOfWeek, shift.ErrSundayEntry)
		}
		sh.Days[weekday] = shift.Day{ClockInTime: trimSeconds(day.ClockInTime), ClockOutTime: trimSeconds(day.ClockOutTime)}
	}
	return sh, nil
}

// trimSeconds turns "08:00:00" into "08:00".
func trimSeconds(clock string) string {
	if len(clock) == len("15:04:05") {
		return clock[:5]
	}
	return clock
}

type shiftRepository struct {
	client *Client
}

func NewShiftRepository(client *Client) shift.ShiftRepository {
	return &shiftRepository{client: client}
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	resp, err := r.client.request(ctx).
		SetPathParam("id", id).
		SetQueryParam("company_id", companyID).
		Get("/shifts/{id}")

	var dto shiftDTO
	if err := r.client.decode(resp, err, &dto); err != nil {
		if errors.Is(err, errNotFound) {
			return shift.Shift{}, fmt.Errorf("shift with id %s: %w", id, shift.ErrShiftNotFound)
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}
	return dto.toEntity()
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, companyID string) ([]shift.Shift, error) {
	resp, err := r.client.request(ctx).
		SetQueryParam("company_id", companyID).
		Get("/shifts")

	var dtos []shiftDTO
	if err := r.client.decode(resp, err, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	shifts := make([]shift.Shift, 0, len(dtos))
	for _, d := range dtos {
		sh, err := d.toEntity()
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, nil
}

type locationDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
}

type locationRepository struct {
	client *Client
}

func NewLocationRepository(client *Client) location.LocationRepository {
	return &locationRepository{client: client}
}

// GetByID implements location.LocationRepository.
func (r *locationRepository) GetByID(ctx context.Context, id string, companyID string) (location.Location, error) {
	resp, err := r.client.request(ctx).
		SetPathParam("id", id).
		SetQueryParam("company_id", companyID).
		Get("/locations/{id}")

	var dto locationDTO
	if err := r.client.decode(resp, err, &dto); err != nil {
		if errors.Is(err, errNotFound) {
			return location.Location{}, fmt.Errorf("location with id %s: %w", id, location.ErrLocationNotFound)
		}
		return location.Location{}, fmt.Errorf("failed to get location with id %s: %w", id, err)
	}
	return location.Location(dto), nil
}

// List implements location.LocationRepository.
func (r *locationRepository) List(ctx context.Context, companyID string) ([]location.Location, error) {
	resp, err := r.client.request(ctx).
		SetQueryParam("company_id", companyID).
		Get("/locations")

	var dtos []locationDTO
	if err := r.client.decode(resp, err, &dtos); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	locations := make([]location.Location, 0, len(dtos))
	for _, d := range dtos {
		locations = append(locations, location.Location(d))
	}
	return locations, nil
}
