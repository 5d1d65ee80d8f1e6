package utils

import (
	"fmt"
	"regexp"
	"time"
)

var (
	dateFormatRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeFormatRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// IsValidDateFormat reports whether s is a YYYY-MM-DD string naming a real
// calendar date. "2024-02-30" matches the shape but fails the parse.
func IsValidDateFormat(s string) bool {
	if !dateFormatRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidTimeFormat reports whether s is a 24-hour HH:mm string.
func IsValidTimeFormat(s string) bool {
	return timeFormatRe.MatchString(s)
}

// CalculateEndTime adds durationMinutes to an HH:mm start time using
// minutes-of-day arithmetic, wrapping modulo 24 hours. A wrapped result is
// numerically earlier than the start; callers booking overnight services
// must guard for that themselves.
func CalculateEndTime(startTime string, durationMinutes int) string {
	var hours, minutes int
	fmt.Sscanf(startTime, "%d:%d", &hours, &minutes)
	total := hours*60 + minutes + durationMinutes
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

// FormatTimeUntil renders the minutes until an appointment as the short
// human string shown on the dashboard.
func FormatTimeUntil(minutes int) string {
	if minutes <= 0 {
		return "Ahora"
	}
	if minutes < 60 {
		return fmt.Sprintf("En %d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("En %dh", hours)
	}
	return fmt.Sprintf("En %dh %dmin", hours, mins)
}

// MinuteOfDay converts an HH:mm string to minutes since midnight.
func MinuteOfDay(hhmm string) int {
	var hours, minutes int
	fmt.Sscanf(hhmm, "%d:%d", &hours, &minutes)
	return hours*60 + minutes
}

// CombineDateTime attaches an HH:mm time of day to a calendar date in the
// date's location.
func CombineDateTime(date time.Time, hhmm string) time.Time {
	var hours, minutes int
	fmt.Sscanf(hhmm, "%d:%d", &hours, &minutes)
	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location())
}

// TodayRange returns the local calendar day around now, from 00:00:00.000
// to 23:59:59.999.
func TodayRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())
	return start, end
}

// RangesOverlap reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Comparison is lexicographic, valid because all
// values are validated fixed-width HH:mm strings. Touching boundaries do
// not overlap.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}
