package stats

import (
	"sort"
	"time"
)

// RecentWorkoutsLimit caps how many of the newest workouts a full streak
// recompute looks at, so streaks longer than this are truncated.
const RecentWorkoutsLimit = 100

// CalendarDay returns midnight of the day t falls on in loc.
func CalendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

type StreakOutcome string

const (
	StreakStarted   StreakOutcome = "started"
	StreakExtended  StreakOutcome = "extended"
	StreakUnchanged StreakOutcome = "unchanged"
	StreakReset     StreakOutcome = "reset"
)

// NextStreak applies a workout logged at now to the stored state.
// Logging twice on the same day leaves the streak as it is.
func NextStreak(state StreakState, now time.Time, loc *time.Location) (int, StreakOutcome) {
	if state.LastWorkoutDate == nil {
		return 1, StreakStarted
	}

	today := CalendarDay(now, loc)
	last := CalendarDay(*state.LastWorkoutDate, loc)
	switch {
	case last.Equal(today):
		return state.Streak, StreakUnchanged
	case last.Equal(today.AddDate(0, 0, -1)):
		return state.Streak + 1, StreakExtended
	default:
		return 1, StreakReset
	}
}

// StreakFromDates counts consecutive calendar days with at least one workout,
// ending today or yesterday. Several workouts on one day count once.
func StreakFromDates(dates []time.Time, now time.Time, loc *time.Location) int {
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, CalendarDay(d, loc))
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	today := CalendarDay(now, loc)
	yesterday := today.AddDate(0, 0, -1)

	var cursor time.Time
	switch {
	case containsDay(days, today):
		cursor = today
	case containsDay(days, yesterday):
		cursor = yesterday
	default:
		return 0
	}

	streak := 1
	for _, day := range days {
		expected := cursor.AddDate(0, 0, -1)
		switch {
		case day.Equal(expected):
			streak++
			cursor = day
		case day.Before(expected):
			return streak
		}
		// same day as cursor (or later): already counted
	}
	return streak
}

func containsDay(days []time.Time, day time.Time) bool {
	for _, d := range days {
		if d.Equal(day) {
			return true
		}
	}
	return false
}
