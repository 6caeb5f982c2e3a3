package worktime_test

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"worktime-backend/internal/clock"
	"worktime-backend/internal/models"
	"worktime-backend/internal/worktime"
)

// fakeStore serves canned rows the way the gorm store would: log entries
// in insertion order, config rows append-only per key.
type fakeStore struct {
	entries []models.LogEntry
	config  map[string][]models.EmployeeData
}

func (f *fakeStore) LogEntriesForDate(_ context.Context, employeeID int, date time.Time) ([]models.LogEntry, error) {
	var out []models.LogEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && sameDay(e.LogDate, date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) LogEntriesBetween(_ context.Context, employeeID int, from, to time.Time) ([]models.LogEntry, error) {
	var out []models.LogEntry
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && !e.LogDate.Before(from) && e.LogDate.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ConfigValues(_ context.Context, employeeID int, key string) ([]models.EmployeeData, error) {
	var out []models.EmployeeData
	for _, row := range f.config[key] {
		if row.Area == strconv.Itoa(employeeID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func configRow(id uint, employeeID int, key, value string) models.EmployeeData {
	return models.EmployeeData{ID: id, Area: strconv.Itoa(employeeID), Key: key, Value: value}
}

func withEmployee(e models.LogEntry, employeeID int) models.LogEntry {
	e.EmployeeID = employeeID
	return e
}

func TestServiceDailySummary(t *testing.T) {
	store := &fakeStore{entries: []models.LogEntry{
		withEmployee(entry(testDay, "09:00:00", "12:00:00"), 7),
		withEmployee(entry(testDay, "13:00:00", "17:00:00"), 7),
	}}
	svc := worktime.NewService(store, quietLogger())

	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	summary, err := svc.DailySummary(context.Background(), 7, 2024, testDay.YearDay(), now)
	if err != nil {
		t.Fatalf("DailySummary returned error: %v", err)
	}
	if got := clock.FormatDuration(summary.Worked); got != "08:00:00" {
		t.Errorf("worked = %s, want 08:00:00", got)
	}
	if summary.InProgress {
		t.Error("closed day reported in progress")
	}
}

func TestServiceDailySummaryInvalidDay(t *testing.T) {
	svc := worktime.NewService(&fakeStore{}, quietLogger())
	for _, day := range []int{0, -1, 367} {
		_, err := svc.DailySummary(context.Background(), 7, 2024, day, time.Now())
		if !errors.Is(err, worktime.ErrInvalidPeriod) {
			t.Errorf("day %d: error = %v, want ErrInvalidPeriod", day, err)
		}
	}
	// Day 366 only exists in leap years.
	if _, err := svc.DailySummary(context.Background(), 7, 2023, 366, time.Now()); !errors.Is(err, worktime.ErrInvalidPeriod) {
		t.Errorf("day 366 of 2023: error = %v, want ErrInvalidPeriod", err)
	}
	if _, err := svc.DailySummary(context.Background(), 7, 2024, 366, time.Now()); err != nil {
		t.Errorf("day 366 of 2024: unexpected error %v", err)
	}
}

func TestServiceWeeklySummary(t *testing.T) {
	// 2024-03-15 is a Friday in ISO week 11.
	store := &fakeStore{entries: []models.LogEntry{
		withEmployee(entry(testDay, "08:00:00", "16:00:00"), 7),
		withEmployee(entry(testDay.AddDate(0, 0, -1), "08:00:00", "16:00:00"), 7),
		withEmployee(entry(testDay.AddDate(0, 0, 10), "08:00:00", "16:00:00"), 7), // next week
	}}
	svc := worktime.NewService(store, quietLogger())

	now := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)
	summary, err := svc.WeeklySummary(context.Background(), 7, 2024, 11, 40, now)
	if err != nil {
		t.Fatalf("WeeklySummary returned error: %v", err)
	}
	if want := 16 * time.Hour; summary.Worked != want {
		t.Errorf("worked = %v, want %v", summary.Worked, want)
	}
	if want := -24 * time.Hour; summary.Difference != want {
		t.Errorf("difference = %v, want %v", summary.Difference, want)
	}
}

func TestServiceWeeklySummaryInvalidWeek(t *testing.T) {
	svc := worktime.NewService(&fakeStore{}, quietLogger())
	for _, week := range []int{0, 53, 99} {
		_, err := svc.WeeklySummary(context.Background(), 7, 2024, week, 40, time.Now())
		if !errors.Is(err, worktime.ErrInvalidPeriod) {
			t.Errorf("week %d: error = %v, want ErrInvalidPeriod", week, err)
		}
	}
}

func TestServiceWeeklySummaryNoEntries(t *testing.T) {
	svc := worktime.NewService(&fakeStore{}, quietLogger())
	summary, err := svc.WeeklySummary(context.Background(), 7, 2024, 11, 40, time.Now())
	if err != nil {
		t.Fatalf("empty week must not error, got %v", err)
	}
	if summary.Worked != 0 || summary.Difference != -40*time.Hour {
		t.Errorf("empty week = %+v, want zero worked and -40h difference", summary)
	}
}

func TestServiceMonthlySummary(t *testing.T) {
	store := &fakeStore{entries: []models.LogEntry{
		withEmployee(entry(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "09:00:00", "17:00:00"), 7),
		withEmployee(entry(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), "09:00:00", "17:00:00"), 7),
	}}
	svc := worktime.NewService(store, quietLogger())

	summaries, err := svc.MonthlySummary(context.Background(), 7, 3, 2024, time.Now())
	if err != nil {
		t.Fatalf("MonthlySummary returned error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("map has %d keys, want 1 (April entry excluded, empty dates absent)", len(summaries))
	}
	if _, err := svc.MonthlySummary(context.Background(), 7, 13, 2024, time.Now()); !errors.Is(err, worktime.ErrInvalidPeriod) {
		t.Errorf("month 13: error = %v, want ErrInvalidPeriod", err)
	}
}

func TestServiceEmployeeData(t *testing.T) {
	store := &fakeStore{config: map[string][]models.EmployeeData{
		models.KeyName:     {configRow(1, 7, models.KeyName, "Jo Klein")},
		models.KeyBirthday: {configRow(2, 7, models.KeyBirthday, "1990-06-01")},
		models.KeyWeekHours: {
			configRow(3, 7, models.KeyWeekHours, "35;2020-01-01"),
			configRow(9, 7, models.KeyWeekHours, "40;2023-04-01"), // last row wins
		},
		models.KeyWorkingDays: {configRow(4, 7, models.KeyWorkingDays, "5;2020-01-01")},
	}}
	svc := worktime.NewService(store, quietLogger())

	info, err := svc.EmployeeData(context.Background(), 7)
	if err != nil {
		t.Fatalf("EmployeeData returned error: %v", err)
	}
	if info.Name != "Jo Klein" || info.Birthday != "1990-06-01" {
		t.Errorf("name/birthday = %q/%q", info.Name, info.Birthday)
	}
	if info.WeekHours.Hours != 40 || info.WeekHours.Since != "2023-04-01" {
		t.Errorf("weekHours = %+v, want most recent row", info.WeekHours)
	}
	if info.WorkingDays.Days != 5 || info.WorkingDays.Since != "2020-01-01" {
		t.Errorf("workingDays = %+v", info.WorkingDays)
	}
}

func TestServiceEmployeeDataMissingName(t *testing.T) {
	svc := worktime.NewService(&fakeStore{config: map[string][]models.EmployeeData{}}, quietLogger())
	_, err := svc.EmployeeData(context.Background(), 7)
	if !errors.Is(err, worktime.ErrMissingConfig) {
		t.Errorf("error = %v, want ErrMissingConfig", err)
	}
}

func TestServiceCheckThresholds(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	store := &fakeStore{
		entries: []models.LogEntry{
			withEmployee(entry(testDay, "09:00:00", "17:00:00"), 7),                  // 8h today
			withEmployee(entry(testDay.AddDate(0, 0, -1), "09:00:00", "17:00:00"), 7), // 8h Thursday
		},
		config: map[string][]models.EmployeeData{
			models.KeyWeekHours:   {configRow(1, 7, models.KeyWeekHours, "40;2023-01-01")},
			models.KeyWorkingDays: {configRow(2, 7, models.KeyWorkingDays, "5;2023-01-01")},
		},
	}
	svc := worktime.NewService(store, quietLogger())

	result, err := svc.CheckThresholds(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("CheckThresholds returned error: %v", err)
	}
	if !result.Daily.Done {
		t.Error("8h worked against an 8h daily target should be done")
	}
	if got := clock.FormatDuration(result.Daily.Remaining); got != "00:00:00" {
		t.Errorf("daily remaining = %s, want 00:00:00", got)
	}
	if result.Weekly.Done {
		t.Error("16h of 40h weekly target should not be done")
	}
	if want := 24 * time.Hour; result.Weekly.Remaining != want {
		t.Errorf("weekly remaining = %v, want %v", result.Weekly.Remaining, want)
	}
}

func TestServiceCheckThresholdsUnconfigured(t *testing.T) {
	// No config rows at all: targets default to zero and both periods
	// count as done immediately.
	svc := worktime.NewService(&fakeStore{config: map[string][]models.EmployeeData{}}, quietLogger())
	result, err := svc.CheckThresholds(context.Background(), 7, time.Now())
	if err != nil {
		t.Fatalf("CheckThresholds returned error: %v", err)
	}
	if !result.Daily.Done || !result.Weekly.Done {
		t.Errorf("zero targets should evaluate as done, got %+v", result)
	}
}
