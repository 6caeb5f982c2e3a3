// Package worktime turns raw clock-in/clock-out sessions into daily,
// weekly and monthly duration summaries and evaluates them against
// configured work-hour targets. The aggregation functions are pure: the
// current time always comes in as an argument, never from the clock.
package worktime

import (
	"time"

	"worktime-backend/internal/clock"
	"worktime-backend/internal/models"
)

// DaySummary is the aggregate of one calendar day's sessions.
type DaySummary struct {
	Date       time.Time
	Worked     time.Duration
	Pause      time.Duration
	Sessions   []models.LogEntry
	InProgress bool
}

// WeekSummary is the aggregate of one ISO week. Difference is signed:
// negative while the configured weekly target is not yet reached.
type WeekSummary struct {
	Week       int
	Worked     time.Duration
	Difference time.Duration
}

// SummarizeDay folds one day's entries, in their stored order, into a
// DaySummary. Worked time is the sum of the session lengths; an open
// last session extends to now and marks the day in progress. Pause time
// is the sum of the gaps between consecutive logout/login pairs; an open
// session contributes no pause. Entries with a logout before the login
// produce negative spans that flow into the sums uncorrected.
func SummarizeDay(entries []models.LogEntry, now time.Time) DaySummary {
	summary := DaySummary{Sessions: entries}
	if len(entries) == 0 {
		return summary
	}

	summary.Date = entries[0].LogDate
	for i := range entries {
		summary.Worked += entries[i].Worked(now)
	}
	for i := 0; i < len(entries)-1; i++ {
		if entries[i].Logout == nil {
			continue
		}
		summary.Pause += entries[i+1].Login.Sub(*entries[i].Logout)
	}
	summary.InProgress = entries[len(entries)-1].Open()
	return summary
}

// SummarizeWeek sums the worked time of every entry in the slice and
// compares it against the configured weekly hours. Zero entries is a
// valid input and yields a difference of minus the full target.
func SummarizeWeek(entries []models.LogEntry, week int, weeklyHours float64, now time.Time) WeekSummary {
	var worked time.Duration
	for i := range entries {
		worked += entries[i].Worked(now)
	}
	return WeekSummary{
		Week:       week,
		Worked:     worked,
		Difference: worked - clock.HoursToDuration(weeklyHours),
	}
}

// SummarizeMonth groups entries by calendar date and summarizes each
// group. The map is sparse: dates without entries have no key, and a
// missing key means no recorded work, not an error. Keys are ISO dates
// ("2006-01-02").
func SummarizeMonth(entries []models.LogEntry, now time.Time) map[string]DaySummary {
	grouped := make(map[string][]models.LogEntry)
	for _, entry := range entries {
		key := entry.LogDate.Format("2006-01-02")
		grouped[key] = append(grouped[key], entry)
	}

	summaries := make(map[string]DaySummary, len(grouped))
	for key, dayEntries := range grouped {
		summaries[key] = SummarizeDay(dayEntries, now)
	}
	return summaries
}
