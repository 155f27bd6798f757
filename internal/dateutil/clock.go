package dateutil

import (
	"fmt"
	"time"
)

// Clock supplies "today" to the functions that depend on it.
type Clock struct {
	now func() time.Time
}

func NewClock(now func() time.Time) Clock {
	return Clock{now: now}
}

func System() Clock {
	return Clock{now: time.Now}
}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return Clock{now: func() time.Time { return t }}
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c Clock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Parse reads s in the clock's zone.
func (c Clock) Parse(s string) time.Time {
	return ParseInLocation(s, c.Now().Location())
}

// IsOverdue reports whether the deadline's calendar day is before today.
func (c Clock) IsOverdue(deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return midnight(deadline).Before(midnight(c.Now()))
}

// DaysFromToday is the signed number of calendar days from today to t.
func (c Clock) DaysFromToday(t time.Time) int {
	return DaysBetween(midnight(c.Now()), midnight(t))
}

func (c Clock) RelativeDateLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	n := c.DaysFromToday(t)
	switch {
	case n == 0:
		return "今天"
	case n == 1:
		return "明天"
	case n == 2:
		return "后天"
	case n > 2 && n <= 7:
		return fmt.Sprintf("%d天后", n)
	case n == -1:
		return "昨天"
	case n == -2:
		return "前天"
	case n < -2 && n >= -7:
		return fmt.Sprintf("%d天前", -n)
	default:
		return FormatDateFriendly(t)
	}
}

// ThisWeekRange spans Monday through Sunday of the current week.
func (c Clock) ThisWeekRange() Range {
	today := c.Today()
	offset := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return Range{Start: FormatDate(start), End: FormatDate(end)}
}

func (c Clock) ThisMonthRange() Range {
	today := c.Today()
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	end := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location())
	return Range{Start: FormatDate(start), End: FormatDate(end)}
}
