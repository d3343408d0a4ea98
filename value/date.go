package value

import (
	"strconv"
	"strings"
	"time"
)

// UN/CEFACT date format codes carried in the format attribute of
// udt:DateTimeString.
const (
	FormatDate  = "102" // CCYYMMDD
	FormatMonth = "610" // CCYYMM
	FormatWeek  = "616" // CCYYWW
)

// Date parses a date string qualified by a format code. An empty format
// code is treated as 102, falling back to ISO 8601 for producers that
// ignore the code. Results are in UTC.
func Date(s, format string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	switch format {
	case FormatDate:
		return parseLayout("20060102", s)
	case FormatMonth:
		return parseLayout("200601", s)
	case FormatWeek:
		return parseWeek(s)
	case "":
		if t, ok := parseLayout("20060102", s); ok {
			return t, true
		}
		if t, ok := parseLayout("2006-01-02", s); ok {
			return t, true
		}
		return parseLayout(time.RFC3339, s)
	default:
		return time.Time{}, false
	}
}

func parseLayout(layout, s string) (time.Time, bool) {
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseWeek returns the Monday of ISO week CCYYWW.
func parseWeek(s string) (time.Time, bool) {
	if len(s) != 6 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return time.Time{}, false
	}
	week, err := strconv.Atoi(s[4:])
	if err != nil || week < 1 || week > 53 {
		return time.Time{}, false
	}

	// January 4th is always in week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset).AddDate(0, 0, (week-1)*7)

	// Week 53 only exists in long years.
	if y, w := monday.ISOWeek(); y != year || w != week {
		return time.Time{}, false
	}
	return monday, true
}
