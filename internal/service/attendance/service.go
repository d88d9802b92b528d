package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/location"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/cooldown"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/validator"
)

const (
	msgCreated = "Attendance created successfully"
	msgUpdated = "Attendance updated successfully"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	shift.ShiftRepository
	location.LocationRepository
	attendance.Transactor
	cooldown *cooldown.Guard
	logger   *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	locationRepo location.LocationRepository,
	transactor attendance.Transactor,
	guard *cooldown.Guard,
	logger *slog.Logger,
) attendance.ReconciliationService {
	if logger == nil {
		logger = slog.Default()
	}
	if transactor == nil {
		transactor = directTransactor{}
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		ShiftRepository:      shiftRepo,
		LocationRepository:   locationRepo,
		Transactor:           transactor,
		cooldown:             guard,
		logger:               logger,
	}
}

// directTransactor runs fn on the caller's context, for stores without transactions.
type directTransactor struct{}

func (directTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Lookup implements attendance.ReconciliationService.
func (s *AttendanceServiceImpl) Lookup(ctx context.Context, req attendance.LookupRequest) (attendance.LookupResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LookupResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.Weekday() == time.Sunday {
		return attendance.LookupResponse{}, attendance.ErrSundayNotAllowed
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.LookupResponse{}, err
	}

	existing, err := s.stored(ctx, req.EmployeeID, date, actor.CompanyID)
	if err != nil {
		return attendance.LookupResponse{}, err
	}

	var resp attendance.LookupResponse
	if existing != nil {
		resp.Found = true
		resp.RemarkLocked = attendance.EditableRemark(existing).Locked()
		resp.Attendance = toForm(*existing)
	} else {
		profile, err := s.EmployeeRepository.GetProfile(ctx, req.EmployeeID, actor.CompanyID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return attendance.LookupResponse{}, employee.ErrEmployeeNotFound
			}
			return attendance.LookupResponse{}, fmt.Errorf("%w: %w", attendance.ErrFetchFailed, err)
		}
		resp.Attendance = defaultForm(profile, date)
	}

	if resp.Attendance.ShiftID != nil {
		day, err := s.shiftDay(ctx, *resp.Attendance.ShiftID, date, actor.CompanyID)
		if err != nil {
			return attendance.LookupResponse{}, err
		}
		resp.ShiftDay = day
	}

	return resp, nil
}

// defaultForm seeds a new record from the employee profile: office for
// employees with a registered face, field worker otherwise.
func defaultForm(profile employee.Profile, date time.Time) attendance.AttendanceForm {
	typ := attendance.TypeFieldWorker
	if profile.HasRegisteredFace {
		typ = attendance.TypeOffice
	}
	return attendance.AttendanceForm{
		EmployeeID:     profile.ID,
		Date:           date.Format(dateLayout),
		AttendanceType: int(typ),
		ShiftID:        profile.AssignedShiftID,
	}
}

// shiftDay returns the shift's entry for date's weekday, or nil when the
// shift is gone or has no entry that day.
func (s *AttendanceServiceImpl) shiftDay(ctx context.Context, shiftID string, date time.Time, companyID string) (*attendance.ShiftDayInfo, error) {
	sh, err := s.ShiftRepository.GetByID(ctx, shiftID, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", attendance.ErrFetchFailed, err)
	}

	day, ok := sh.DayEntry(date.Weekday())
	if !ok {
		return nil, nil
	}
	return &attendance.ShiftDayInfo{
		ShiftID:      sh.ID,
		ShiftName:    sh.Name,
		DayOfWeek:    strings.ToLower(date.Weekday().String()),
		ClockInTime:  day.ClockInTime,
		ClockOutTime: day.ClockOutTime,
	}, nil
}

// Submit implements attendance.ReconciliationService.
func (s *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitRequest) (attendance.SubmitResponse, error) {
	if date, ok := validator.IsValidDate(req.Date); ok && date.Weekday() == time.Sunday {
		return attendance.SubmitResponse{}, attendance.ErrSundayNotAllowed
	}

	if err := req.Validate(); err != nil {
		return attendance.SubmitResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	typ := attendance.Type(*req.AttendanceType)

	start, end, err := assembleTimes(req, typ, date)
	if err != nil {
		return attendance.SubmitResponse{}, err
	}

	if typ == attendance.TypeFieldWorker && date.Sub(start) > maxStartLead {
		return attendance.SubmitResponse{}, attendance.ErrStartTooEarly
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.SubmitResponse{}, err
	}

	cooldownKey := cooldown.Key(actor.CompanyID, req.EmployeeID, req.Date)
	if err := s.cooldown.Check(ctx, cooldownKey); err != nil {
		if errors.Is(err, cooldown.ErrTooSoon) {
			return attendance.SubmitResponse{}, err
		}
		s.logger.Warn("submission cooldown unavailable", slog.String("key", cooldownKey), slog.Any("error", err))
	}

	var (
		row     attendance.Attendance
		created bool
		inner   error
	)
	err = s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		row, created, inner = s.upsert(ctx, req, typ, date, start, end, actor.CompanyID)
		return inner
	})
	if err != nil {
		if inner != nil {
			return attendance.SubmitResponse{}, inner
		}
		return attendance.SubmitResponse{}, fmt.Errorf("%w: %w", attendance.ErrSaveFailed, err)
	}

	if err := s.cooldown.Mark(ctx, cooldownKey); err != nil {
		s.logger.Warn("failed to mark submission", slog.String("key", cooldownKey), slog.Any("error", err))
	}

	s.logger.Info("attendance submitted",
		slog.String("attendance_id", row.ID),
		slog.String("employee_id", row.EmployeeID),
		slog.String("date", req.Date),
		slog.String("attendance_type", typ.String()),
		slog.Bool("created", created),
		slog.String("user_id", actor.UserID),
	)

	message := msgUpdated
	if created {
		message = msgCreated
	}
	return attendance.SubmitResponse{
		ID:         row.ID,
		Created:    created,
		Message:    message,
		Attendance: toForm(row),
	}, nil
}

// upsert loads the existing row, applies the remark rule and the reference
// checks, and writes exactly one Create or Update.
func (s *AttendanceServiceImpl) upsert(
	ctx context.Context,
	req attendance.SubmitRequest,
	typ attendance.Type,
	date, start time.Time,
	end *time.Time,
	companyID string,
) (attendance.Attendance, bool, error) {
	existing, err := s.stored(ctx, req.EmployeeID, date, companyID)
	if err != nil {
		return attendance.Attendance{}, false, err
	}

	remark, err := attendance.EditableRemark(existing).Apply(attendance.Remark{
		Text:   strings.TrimSpace(*req.RemarkText),
		Status: attendance.RemarkStatus(*req.RemarkStatus),
	})
	if err != nil {
		return attendance.Attendance{}, false, err
	}

	placement := placementFor(req, typ)
	if err := s.checkReferences(ctx, *req.ShiftID, placement, companyID); err != nil {
		return attendance.Attendance{}, false, err
	}

	record := attendance.Record{
		CompanyID:      companyID,
		EmployeeID:     req.EmployeeID,
		Date:           date,
		ShiftID:        *req.ShiftID,
		Placement:      placement,
		StartTime:      start,
		EndTime:        end,
		Remark:         remark,
		ApprovalStatus: attendance.StatusWaitingApproval,
	}
	if existing != nil {
		prior, _ := existing.Record()
		record.ID = prior.ID
		record.ApprovalStatus = prior.ApprovalStatus
		record.RemarkApprovedBy = prior.RemarkApprovedBy
		record.RemarkApprovedAt = prior.RemarkApprovedAt
	}

	row := record.Row()
	if existing == nil {
		row, err = s.AttendanceRepository.Create(ctx, row)
	} else {
		err = s.AttendanceRepository.Update(ctx, row)
	}
	if err != nil {
		return attendance.Attendance{}, false, fmt.Errorf("%w: %w", attendance.ErrSaveFailed, err)
	}
	return row, existing == nil, nil
}

// stored fetches the employee's row for date and rejects rows whose location
// columns disagree with their attendance type.
func (s *AttendanceServiceImpl) stored(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrFetchFailed, err)
	}
	if existing == nil {
		return nil, nil
	}
	if _, err := existing.Record(); err != nil {
		s.logger.Error("stored attendance is inconsistent",
			slog.String("attendance_id", existing.ID),
			slog.String("attendance_type", existing.AttendanceType.String()),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: attendance %s: %w", attendance.ErrFetchFailed, existing.ID, err)
	}
	return existing, nil
}

// assembleTimes parses start and end for typ and rejects an end before the start.
func assembleTimes(req attendance.SubmitRequest, typ attendance.Type, date time.Time) (time.Time, *time.Time, error) {
	var errs validator.ValidationErrors

	start, ok := parseStamp(*req.StartTime, typ, date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in " + stampFormatHint(typ) + " format",
		})
	}

	var end *time.Time
	if !validator.IsEmptyPtr(req.EndTime) {
		t, ok := parseStamp(*req.EndTime, typ, date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in " + stampFormatHint(typ) + " format",
			})
		} else {
			end = &t
		}
	}

	if len(errs) > 0 {
		return time.Time{}, nil, errs
	}

	if end != nil && end.Before(start) {
		return time.Time{}, nil, validator.ValidationErrors{{
			Field:   "end_time",
			Message: "end_time must not be before start_time",
		}}
	}

	return start, end, nil
}

// placementFor builds the location variant for typ. Office records carry no
// location ids, so any sent with an office submit are dropped.
func placementFor(req attendance.SubmitRequest, typ attendance.Type) attendance.Placement {
	if typ == attendance.TypeOffice {
		return attendance.OfficePlacement{}
	}
	return attendance.FieldPlacement{
		StartLocationID: strings.TrimSpace(*req.StartLocationID),
		EndLocationID:   nonEmpty(req.EndLocationID),
	}
}

// checkReferences verifies that the shift and any locations exist for the company.
func (s *AttendanceServiceImpl) checkReferences(ctx context.Context, shiftID string, placement attendance.Placement, companyID string) error {
	var errs validator.ValidationErrors

	if _, err := s.ShiftRepository.GetByID(ctx, shiftID, companyID); err != nil {
		if !errors.Is(err, shift.ErrShiftNotFound) {
			return fmt.Errorf("%w: %w", attendance.ErrFetchFailed, err)
		}
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "shift not found"})
	}

	if field, ok := placement.(attendance.FieldPlacement); ok {
		refs := []struct {
			field string
			id    *string
		}{
			{"start_location_id", &field.StartLocationID},
			{"end_location_id", field.EndLocationID},
		}
		for _, ref := range refs {
			if ref.id == nil {
				continue
			}
			if _, err := s.LocationRepository.GetByID(ctx, *ref.id, companyID); err != nil {
				if !errors.Is(err, location.ErrLocationNotFound) {
					return fmt.Errorf("%w: %w", attendance.ErrFetchFailed, err)
				}
				errs = append(errs, validator.ValidationError{Field: ref.field, Message: "location not found"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
