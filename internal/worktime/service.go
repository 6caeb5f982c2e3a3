package worktime

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"worktime-backend/internal/clock"
	"worktime-backend/internal/models"
	"worktime-backend/internal/repository"
)

var (
	// ErrInvalidPeriod is returned for a month outside 1-12, a week
	// outside 1-52 or a day of year outside the requested year.
	ErrInvalidPeriod = errors.New("period out of range")
	// ErrMissingConfig is returned when no configuration row exists for
	// a requested key.
	ErrMissingConfig = errors.New("missing employee configuration")
)

// WeekHoursConfig is the configured weekly target. Only the most recent
// configuration row is authoritative.
type WeekHoursConfig struct {
	Hours float64 `json:"hours"`
	Since string  `json:"since,omitempty"`
}

// WorkingDaysConfig is the configured number of working days per week.
type WorkingDaysConfig struct {
	Days  int    `json:"days"`
	Since string `json:"since,omitempty"`
}

// EmployeeInfo is the assembled configuration of one employee.
type EmployeeInfo struct {
	Name        string            `json:"name"`
	Birthday    string            `json:"birthday"`
	WorkingDays WorkingDaysConfig `json:"workingDays"`
	WeekHours   WeekHoursConfig   `json:"weekHours"`
}

// Service assembles raw rows from the store and runs the pure
// aggregation and threshold logic over them. Every method recomputes
// from scratch; nothing derived is cached.
type Service struct {
	store  repository.Store
	logger *logrus.Logger
}

func NewService(store repository.Store, logger *logrus.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// DailySummary aggregates one day, addressed as a day of year.
func (s *Service) DailySummary(ctx context.Context, employeeID, year, dayOfYear int, now time.Time) (DaySummary, error) {
	if dayOfYear < 1 || dayOfYear > 366 {
		return DaySummary{}, fmt.Errorf("%w: day of year %d", ErrInvalidPeriod, dayOfYear)
	}
	date := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, dayOfYear-1)
	if date.Year() != year {
		return DaySummary{}, fmt.Errorf("%w: day %d does not exist in %d", ErrInvalidPeriod, dayOfYear, year)
	}

	entries, err := s.store.LogEntriesForDate(ctx, employeeID, date)
	if err != nil {
		return DaySummary{}, err
	}

	summary := SummarizeDay(entries, now)
	s.logger.WithFields(logrus.Fields{
		"employee": employeeID,
		"date":     date.Format("2006-01-02"),
		"sessions": len(entries),
		"worked":   clock.FormatDuration(summary.Worked),
	}).Debug("daily summary computed")
	return summary, nil
}

// WeeklySummary aggregates one ISO-numbered week of the given year.
func (s *Service) WeeklySummary(ctx context.Context, employeeID, year, week int, weeklyHours float64, now time.Time) (WeekSummary, error) {
	if week < 1 || week > 52 {
		return WeekSummary{}, fmt.Errorf("%w: week %d", ErrInvalidPeriod, week)
	}
	return s.weekSummary(ctx, employeeID, year, week, weeklyHours, now)
}

// WeekSummaryForDate aggregates the ISO week containing now. Unlike
// WeeklySummary it accepts week 53 of long ISO years.
func (s *Service) WeekSummaryForDate(ctx context.Context, employeeID int, weeklyHours float64, now time.Time) (WeekSummary, error) {
	isoYear, isoWeek := now.ISOWeek()
	return s.weekSummary(ctx, employeeID, isoYear, isoWeek, weeklyHours, now)
}

// weekSummary skips the 1-52 range check so internal callers can
// aggregate week 53 of long ISO years.
func (s *Service) weekSummary(ctx context.Context, employeeID, year, week int, weeklyHours float64, now time.Time) (WeekSummary, error) {
	from := isoWeekStart(year, week, now.Location())
	entries, err := s.store.LogEntriesBetween(ctx, employeeID, from, from.AddDate(0, 0, 7))
	if err != nil {
		return WeekSummary{}, err
	}
	return SummarizeWeek(entries, week, weeklyHours, now), nil
}

// MonthlySummary aggregates a whole month into a sparse per-date map.
func (s *Service) MonthlySummary(ctx context.Context, employeeID, month, year int, now time.Time) (map[string]DaySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	entries, err := s.store.LogEntriesBetween(ctx, employeeID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	return SummarizeMonth(entries, now), nil
}

// MonthlyTotal sums the worked time of a whole month into one duration.
func (s *Service) MonthlyTotal(ctx context.Context, employeeID, month, year int, now time.Time) (time.Duration, error) {
	summaries, err := s.MonthlySummary(ctx, employeeID, month, year, now)
	if err != nil {
		return 0, err
	}
	var total time.Duration
	for _, day := range summaries {
		total += day.Worked
	}
	return total, nil
}

// EmployeeData assembles the employee's configuration from the key/value
// rows. Name and birthday must exist; missing hours or days default to
// zero and the caller sees a zero target.
func (s *Service) EmployeeData(ctx context.Context, employeeID int) (EmployeeInfo, error) {
	name, err := s.requiredValue(ctx, employeeID, models.KeyName)
	if err != nil {
		return EmployeeInfo{}, err
	}
	birthday, err := s.requiredValue(ctx, employeeID, models.KeyBirthday)
	if err != nil {
		return EmployeeInfo{}, err
	}
	weekHours, weekSince, err := s.numericValue(ctx, employeeID, models.KeyWeekHours)
	if err != nil {
		return EmployeeInfo{}, err
	}
	workingDays, daysSince, err := s.numericValue(ctx, employeeID, models.KeyWorkingDays)
	if err != nil {
		return EmployeeInfo{}, err
	}

	return EmployeeInfo{
		Name:        name,
		Birthday:    birthday,
		WeekHours:   WeekHoursConfig{Hours: weekHours, Since: weekSince},
		WorkingDays: WorkingDaysConfig{Days: int(workingDays), Since: daysSince},
	}, nil
}

// CheckThresholds fetches the current targets and worked durations and
// evaluates both periods. This is the operation the push feed re-invokes
// on every poll; it is stateless, so concurrent calls for different
// employees never interfere.
func (s *Service) CheckThresholds(ctx context.Context, employeeID int, now time.Time) (ThresholdResult, error) {
	weekHours, _, err := s.numericValue(ctx, employeeID, models.KeyWeekHours)
	if err != nil {
		return ThresholdResult{}, err
	}
	workingDays, _, err := s.numericValue(ctx, employeeID, models.KeyWorkingDays)
	if err != nil {
		return ThresholdResult{}, err
	}

	today, err := s.store.LogEntriesForDate(ctx, employeeID, now)
	if err != nil {
		return ThresholdResult{}, err
	}
	dailyWorked := SummarizeDay(today, now).Worked

	weekly, err := s.WeekSummaryForDate(ctx, employeeID, weekHours, now)
	if err != nil {
		return ThresholdResult{}, err
	}

	dailyTarget := DailyTargetFromWeekly(weekHours, int(workingDays))
	weeklyTarget := clock.HoursToDuration(weekHours)
	result := Evaluate(dailyWorked, weekly.Worked, dailyTarget, weeklyTarget)

	s.logger.WithFields(logrus.Fields{
		"employee":    employeeID,
		"dailyDone":   result.Daily.Done,
		"weeklyDone":  result.Weekly.Done,
		"dailyWorked": clock.FormatDuration(dailyWorked),
	}).Debug("thresholds evaluated")
	return result, nil
}

func (s *Service) requiredValue(ctx context.Context, employeeID int, key string) (string, error) {
	rows, err := s.store.ConfigValues(ctx, employeeID, key)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: employee %d key %s", ErrMissingConfig, employeeID, key)
	}
	return rows[len(rows)-1].Value, nil
}

// numericValue reads a "<number>;<since>" key. No row at all is a valid
// state meaning "not configured", reported as zero.
func (s *Service) numericValue(ctx context.Context, employeeID int, key string) (float64, string, error) {
	rows, err := s.store.ConfigValues(ctx, employeeID, key)
	if err != nil {
		return 0, "", err
	}
	if len(rows) == 0 {
		return 0, "", nil
	}
	raw, since := rows[len(rows)-1].SplitValue()
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse %s value %q for employee %d: %w", key, raw, employeeID, err)
	}
	return number, since, nil
}

// isoWeekStart returns the Monday starting the ISO week. January 4th is
// always inside week 1.
func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, -(weekday - 1))
	return monday.AddDate(0, 0, (week-1)*7)
}
