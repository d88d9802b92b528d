package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/domain/shift"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// GetByID implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name
		FROM shifts
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var sh shift.Shift
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&sh.ID, &sh.CompanyID, &sh.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, fmt.Errorf("shift with id %s: %w", id, shift.ErrShiftNotFound)
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}

	days, err := s.loadDays(ctx, []string{sh.ID})
	if err != nil {
		return shift.Shift{}, err
	}
	sh.Days = days[sh.ID]
	if sh.Days == nil {
		sh.Days = map[time.Weekday]shift.Day{}
	}

	return sh, nil
}

// List implements shift.ShiftRepository.
func (s *shiftRepositoryImpl) List(ctx context.Context, companyID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name
		FROM shifts
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := []shift.Shift{}
	var ids []string
	for rows.Next() {
		var sh shift.Shift
		if err := rows.Scan(&sh.ID, &sh.CompanyID, &sh.Name); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
		ids = append(ids, sh.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	if len(ids) == 0 {
		return shifts, nil
	}

	days, err := s.loadDays(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range shifts {
		shifts[i].Days = days[shifts[i].ID]
		if shifts[i].Days == nil {
			shifts[i].Days = map[time.Weekday]shift.Day{}
		}
	}

	return shifts, nil
}

// loadDays reads the per-day clock times of the given shifts, keyed by shift id.
func (s *shiftRepositoryImpl) loadDays(ctx context.Context, shiftIDs []string) (map[string]map[time.Weekday]shift.Day, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT shift_id, day_of_week,
			   to_char(clock_in_time, 'HH24:MI'), to_char(clock_out_time, 'HH24:MI')
		FROM shift_days
		WHERE shift_id::text = ANY($1::text[])
	`

	rows, err := q.Query(ctx, query, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift days: %w", err)
	}
	defer rows.Close()

	result := make(map[string]map[time.Weekday]shift.Day)
	for rows.Next() {
		var (
			shiftID string
			isoDay  int
			day     shift.Day
		)
		if err := rows.Scan(&shiftID, &isoDay, &day.ClockInTime, &day.ClockOutTime); err != nil {
			return nil, fmt.Errorf("failed to scan shift day: %w", err)
		}

		weekday := time.Weekday(isoDay % 7)
		if !shift.IsWorkingWeekday(weekday) {
			return nil, fmt.Errorf("shift %s: %w", shiftID, shift.ErrSundayEntry)
		}

		if result[shiftID] == nil {
			result[shiftID] = make(map[time.Weekday]shift.Day)
		}
		result[shiftID][weekday] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift days: %w", err)
	}

	return result, nil
}
