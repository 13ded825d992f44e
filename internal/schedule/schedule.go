// Package schedule holds the calendar arithmetic for reminder fire times and
// the parsing of human schedule specs into cron expressions.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// LeadTime returns when a reminder for a deadline should fire:
// the due time minus the lead.
func LeadTime(due time.Time, lead time.Duration) time.Time {
	return due.Add(-lead)
}

// NextDaily returns the next occurrence of hour:minute strictly after now,
// in now's location. A wall-clock time that has already passed today rolls
// to tomorrow.
func NextDaily(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NextWeekly returns the next occurrence of weekday at hour:minute strictly
// after now. If today is the target weekday but the time has passed, the
// result rolls a full week.
func NextWeekly(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	next := time.Date(now.Year(), now.Month(), now.Day()+days, hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

var reClock = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock parses a wall-clock "HH:MM" string.
func ParseClock(v string) (hour, minute int, err error) {
	m := reClock.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid clock time %q (use HH:MM)", v)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", v)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in %q", v)
	}
	return hour, minute, nil
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday parses a weekday name, long or three-letter form.
func ParseWeekday(v string) (time.Weekday, error) {
	if d, ok := weekdays[strings.ToLower(strings.TrimSpace(v))]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", v)
}

// ParseSpec normalizes a recurring schedule spec into a five-field cron
// expression.
//
// Supported forms:
//   - "daily HH:MM"          -> "M H * * *"
//   - "weekly <day> HH:MM"   -> "M H * * d"
//   - anything else is treated as a raw cron expression and validated
//     with the standard parser.
func ParseSpec(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("schedule spec required")
	}

	fields := strings.Fields(strings.ToLower(s))
	switch fields[0] {
	case "daily":
		if len(fields) != 2 {
			return "", fmt.Errorf("invalid daily spec %q (use 'daily HH:MM')", raw)
		}
		h, m, err := ParseClock(fields[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d %d * * *", m, h), nil

	case "weekly":
		if len(fields) != 3 {
			return "", fmt.Errorf("invalid weekly spec %q (use 'weekly <day> HH:MM')", raw)
		}
		day, err := ParseWeekday(fields[1])
		if err != nil {
			return "", err
		}
		h, m, err := ParseClock(fields[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d %d * * %d", m, h, int(day)), nil
	}

	if _, err := cron.ParseStandard(s); err != nil {
		return "", fmt.Errorf("invalid cron expression %q: %w", raw, err)
	}
	return s, nil
}
