package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepos struct {
	companyID string
	err       error
}

func (s *stubRepos) GetProfile(context.Context, string, string) (employee.Profile, error) {
	return employee.Profile{}, employee.ErrEmployeeNotFound
}

func (s *stubRepos) ListProfiles(_ context.Context, companyID string) ([]employee.Profile, error) {
	s.companyID = companyID
	if s.err != nil {
		return nil, s.err
	}
	shiftID := "s1"
	return []employee.Profile{
		{ID: "e1", FullName: "Budi", HasRegisteredFace: true, AssignedShiftID: &shiftID, Status: employee.EmploymentStatusActive},
	}, nil
}

type stubShifts struct{ companyID string }

func (s *stubShifts) GetByID(context.Context, string, string) (shift.Shift, error) {
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (s *stubShifts) List(_ context.Context, companyID string) ([]shift.Shift, error) {
	s.companyID = companyID
	return []shift.Shift{{
		ID:   "s1",
		Name: "Morning",
		Days: map[time.Weekday]shift.Day{time.Tuesday: {ClockInTime: "08:00", ClockOutTime: "16:00"}},
	}}, nil
}

type stubLocations struct{ companyID string }

func (s *stubLocations) GetByID(context.Context, string, string) (location.Location, error) {
	return location.Location{}, location.ErrLocationNotFound
}

func (s *stubLocations) List(_ context.Context, companyID string) ([]location.Location, error) {
	s.companyID = companyID
	return []location.Location{{ID: "l1", CompanyID: companyID, Name: "Warehouse A"}}, nil
}

func authContext(t *testing.T) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "1h")
	token, _, err := svc.GenerateAccessToken("user-1", "company-1")
	require.NoError(t, err)
	ctx, err := jwt.ContextWithToken(context.Background(), svc.JWTAuth(), token)
	require.NoError(t, err)
	return ctx
}

func TestDirectoryService_Lists(t *testing.T) {
	employees, shifts, locations := &stubRepos{}, &stubShifts{}, &stubLocations{}
	svc := NewDirectoryService(employees, shifts, locations)
	ctx := authContext(t)

	profiles, err := svc.ListEmployeeProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Budi", profiles[0].Name)
	assert.Equal(t, "active", profiles[0].Status)
	assert.Equal(t, "company-1", employees.companyID)

	shiftList, err := svc.ListShifts(ctx)
	require.NoError(t, err)
	require.Len(t, shiftList, 1)
	require.Len(t, shiftList[0].Days, 1)
	assert.Equal(t, 2, shiftList[0].Days[0].DayOfWeek)
	assert.Equal(t, "company-1", shifts.companyID)

	locationList, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []location.LocationResponse{{ID: "l1", Name: "Warehouse A"}}, locationList)
	assert.Equal(t, "company-1", locations.companyID)
}

func TestDirectoryService_Errors(t *testing.T) {
	upstream := errors.New("upstream down")
	svc := NewDirectoryService(&stubRepos{err: upstream}, &stubShifts{}, &stubLocations{})

	_, err := svc.ListEmployeeProfiles(authContext(t))
	assert.ErrorIs(t, err, upstream)

	_, err = svc.ListLocations(context.Background())
	assert.Error(t, err)
}
