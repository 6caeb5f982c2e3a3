package repository

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"worktime-backend/internal/models"
)

// Store is the data-access collaborator the worktime service reads from.
// Entries come back in insertion order, which for one employee and day is
// chronological; pause computation depends on that order.
type Store interface {
	LogEntriesForDate(ctx context.Context, employeeID int, date time.Time) ([]models.LogEntry, error)
	LogEntriesBetween(ctx context.Context, employeeID int, from, to time.Time) ([]models.LogEntry, error)
	ConfigValues(ctx context.Context, employeeID int, key string) ([]models.EmployeeData, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LogEntriesForDate(ctx context.Context, employeeID int, date time.Time) ([]models.LogEntry, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var entries []models.LogEntry
	err := s.db.WithContext(ctx).
		Where("employee = ? AND log_date = ?", employeeID, day).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LogEntriesBetween returns entries with from <= log_date < to. Week and
// month windows are computed by the caller as date ranges so the query
// stays portable across mysql and sqlite.
func (s *GormStore) LogEntriesBetween(ctx context.Context, employeeID int, from, to time.Time) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	err := s.db.WithContext(ctx).
		Where("employee = ? AND log_date >= ? AND log_date < ?", employeeID, from, to).
		Order("id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormStore) ConfigValues(ctx context.Context, employeeID int, key string) ([]models.EmployeeData, error) {
	var rows []models.EmployeeData
	err := s.db.WithContext(ctx).
		Where("area = ? AND `key` = ?", strconv.Itoa(employeeID), key).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
