package models

import (
	"time"
)

// LogEntry is one clock-in/clock-out session from the timekeeping table.
// Logout stays nil while the employee is still clocked in; aggregation
// extends such sessions to the current time instead.
type LogEntry struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID int        `gorm:"column:employee;index;not null" json:"employee"`
	LogDate    time.Time  `gorm:"column:log_date;type:date;index;not null" json:"logDate"`
	Login      time.Time  `gorm:"not null" json:"login"`
	Logout     *time.Time `json:"logout,omitempty"`
}

func (LogEntry) TableName() string {
	return "timekeeping"
}

// Open reports whether the session has no logout yet.
func (e *LogEntry) Open() bool {
	return e.Logout == nil
}

// Worked returns the session length. An open session extends to now, so
// the result keeps growing until the employee clocks out. A logout before
// the login yields a negative duration; no clamping is done here.
func (e *LogEntry) Worked(now time.Time) time.Duration {
	end := now
	if e.Logout != nil {
		end = *e.Logout
	}
	return end.Sub(e.Login)
}
