package worktime

import (
	"math"
	"time"
)

// PeriodStatus is the threshold verdict for one period. Remaining stays
// signed; it turns negative once the target is exceeded. The wire
// rendering drops the sign, so Done carries the direction.
type PeriodStatus struct {
	Done      bool
	Remaining time.Duration
}

// ThresholdResult pairs the daily and weekly verdicts. This is the value
// pushed to every subscriber on each poll.
type ThresholdResult struct {
	Daily  PeriodStatus
	Weekly PeriodStatus
}

// DailyTargetFromWeekly derives the average daily target from the weekly
// hours and the number of working days. The conversion floors at each
// unit boundary in turn (hours, then minutes, then seconds) rather than
// rounding the final value; downstream consumers depend on these exact
// strings. Zero or negative working days yields a zero target.
func DailyTargetFromWeekly(weeklyHours float64, workingDays int) time.Duration {
	if workingDays <= 0 {
		return 0
	}
	dailyMinutes := weeklyHours * 60 / float64(workingDays)

	hours := int(math.Floor(dailyMinutes / 60))
	minutes := int(math.Floor(math.Mod(dailyMinutes, 60)))
	seconds := int(math.Floor(math.Mod(dailyMinutes*60, 60)))

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
}

// Evaluate compares worked time against the targets for both periods.
// A period is done once the worked time reaches its target, including
// the exact-equality case.
func Evaluate(dailyWorked, weeklyWorked, dailyTarget, weeklyTarget time.Duration) ThresholdResult {
	return ThresholdResult{
		Daily: PeriodStatus{
			Done:      dailyWorked >= dailyTarget,
			Remaining: dailyTarget - dailyWorked,
		},
		Weekly: PeriodStatus{
			Done:      weeklyWorked >= weeklyTarget,
			Remaining: weeklyTarget - weeklyWorked,
		},
	}
}
