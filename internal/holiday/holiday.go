// Package holiday computes public holiday dates for a year from a list
// of fixed-date and Easter-relative rules. The rule list is data, so
// other jurisdictions can be supplied from a yaml file instead of the
// built-in calendar.
package holiday

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Rule describes one holiday. Either Month/Day are set for a fixed date,
// or EasterOffset holds a day offset relative to Easter Sunday.
type Rule struct {
	Name         string `yaml:"name"`
	Month        int    `yaml:"month,omitempty"`
	Day          int    `yaml:"day,omitempty"`
	EasterOffset *int   `yaml:"easterOffset,omitempty"`
}

// Movable reports whether the rule is Easter-relative.
func (r Rule) Movable() bool {
	return r.EasterOffset != nil
}

// DateIn resolves the rule for a year.
func (r Rule) DateIn(year int) time.Time {
	if r.EasterOffset != nil {
		return EasterSunday(year).AddDate(0, 0, *r.EasterOffset)
	}
	return time.Date(year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC)
}

// Calendar is a resolved set of holiday rules.
type Calendar struct {
	rules []Rule
}

func NewCalendar(rules []Rule) *Calendar {
	return &Calendar{rules: rules}
}

func offset(days int) *int {
	return &days
}

// Default returns the calendar the service shipped with: seven fixed
// dates plus the six Easter-relative feasts.
func Default() *Calendar {
	return NewCalendar([]Rule{
		{Name: "New Year's Day", Month: 1, Day: 1},
		{Name: "Labour Day", Month: 5, Day: 1},
		{Name: "Liberation Day", Month: 5, Day: 8},
		{Name: "German Unity Day", Month: 10, Day: 3},
		{Name: "Reformation Day", Month: 10, Day: 31},
		{Name: "Christmas Day", Month: 12, Day: 25},
		{Name: "Boxing Day", Month: 12, Day: 26},
		{Name: "Easter Sunday", EasterOffset: offset(0)},
		{Name: "Easter Monday", EasterOffset: offset(1)},
		{Name: "Ascension Day", EasterOffset: offset(39)},
		{Name: "Whit Sunday", EasterOffset: offset(49)},
		{Name: "Whit Monday", EasterOffset: offset(50)},
		{Name: "Corpus Christi", EasterOffset: offset(60)},
	})
}

// Load reads a yaml rule list so deployments can swap in their own
// regional calendar.
func Load(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday rules: %w", err)
	}
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse holiday rules: %w", err)
	}
	for _, rule := range rules {
		if rule.EasterOffset == nil && (rule.Month < 1 || rule.Month > 12 || rule.Day < 1 || rule.Day > 31) {
			return nil, fmt.Errorf("holiday rule %q: invalid fixed date", rule.Name)
		}
	}
	return NewCalendar(rules), nil
}

// Rules returns the underlying rule list.
func (c *Calendar) Rules() []Rule {
	return c.rules
}

// ForYear resolves every rule for the year and returns the dates sorted
// ascending with duplicates removed.
func (c *Calendar) ForYear(year int) []time.Time {
	seen := make(map[string]struct{}, len(c.rules))
	dates := make([]time.Time, 0, len(c.rules))
	for _, rule := range c.rules {
		date := rule.DateIn(year)
		key := date.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// Contains reports whether the date is a holiday in its year.
func (c *Calendar) Contains(date time.Time) bool {
	for _, rule := range c.rules {
		resolved := rule.DateIn(date.Year())
		if resolved.Month() == date.Month() && resolved.Day() == date.Day() {
			return true
		}
	}
	return false
}
