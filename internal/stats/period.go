package stats

import (
	"fmt"
	"strings"
	"time"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodWeek, nil
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// LowerBound returns the inclusive start of the window ending at now.
// Windows are rolling durations, not calendar weeks or months.
func (p Period) LowerBound(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Unix(0, 0).UTC()
	}
}

func (p Period) String() string {
	return string(p)
}
