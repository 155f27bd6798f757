// Package dateutil formats task dates and describes them relative to today.
//
// Every function is total: the zero time.Time stands for a missing or
// unparsable date and yields "", false or 0 instead of an error.
package dateutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

var parseLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// Parse reads an ISO-like date string in the local time zone.
func Parse(s string) time.Time {
	return ParseInLocation(s, time.Local)
}

// ParseInLocation reads s using loc for layouts that carry no zone and
// converts zoned input into loc, so the calendar day is always loc's. It
// returns the zero time when s is blank or matches no known layout.
func ParseInLocation(s string, loc *time.Location) time.Time {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range parseLayouts {
		if tm, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return tm.In(loc)
		}
	}
	return time.Time{}
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

func FormatDateFriendly(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

// DaysBetween returns ceil((end-start)/24h). A difference of 1.2 days is 2.
func DaysBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	diff := end.Sub(start)
	return int(math.Ceil(float64(diff) / float64(day)))
}

// midnight keeps the calendar date of t as seen in t's own zone and pins it
// to UTC midnight, so day arithmetic never crosses a DST transition.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type Range struct {
	Start string
	End   string
}

// Contains reports whether date falls inside the range, both ends inclusive.
func (r Range) Contains(date string) bool {
	d := FormatDate(Parse(date))
	if d == "" || r.Start == "" || r.End == "" {
		return false
	}
	return d >= r.Start && d <= r.End
}

func IsOverdue(deadline time.Time) bool {
	return System().IsOverdue(deadline)
}

func RelativeDateLabel(t time.Time) string {
	return System().RelativeDateLabel(t)
}

func ThisWeekRange() Range {
	return System().ThisWeekRange()
}

func ThisMonthRange() Range {
	return System().ThisMonthRange()
}
