package models

import (
	"strings"
)

// Configuration keys stored in the employees table.
const (
	KeyName        = "Name"
	KeyBirthday    = "Birthday"
	KeyWeekHours   = "WeekHours"
	KeyWorkingDays = "WorkingDays"
)

// EmployeeData is one key/value configuration row from the employees
// table. The area column holds the employee id as text. Rows are
// append-only; the most recently inserted row for a key is authoritative.
type EmployeeData struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Area  string `gorm:"index;not null" json:"area"`
	Key   string `gorm:"index;not null" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (EmployeeData) TableName() string {
	return "employees"
}

// SplitValue splits a "<number>;<since-date>" encoded value. The since
// part is empty when the row carries a bare value.
func (d EmployeeData) SplitValue() (value, since string) {
	parts := strings.SplitN(d.Value, ";", 2)
	value = parts[0]
	if len(parts) == 2 {
		since = parts[1]
	}
	return value, since
}
