package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern requires the strict zero-padded YYYY-MM-DD form.
var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// NormalizeDate turns a user-supplied date string into canonical YYYY-MM-DD.
// Two forms are accepted: the literal keyword "yesterday" (case-insensitive),
// which resolves to the calendar day before now in the host's local time,
// and an absolute YYYY-MM-DD date, which must be a real calendar date.
// The result is a plain calendar-date string with no timezone attached.
func NormalizeDate(input string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(input)

	if strings.EqualFold(trimmed, "yesterday") {
		y := now.AddDate(0, 0, -1)
		return fmt.Sprintf("%04d-%02d-%02d", y.Year(), int(y.Month()), y.Day()), nil
	}

	m := datePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", invalidDate(trimmed)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	// time.Date normalizes overflow (Feb 30 becomes Mar 1/2), so a real
	// calendar date must round-trip to the same components.
	rebuilt := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if rebuilt.Year() != year || int(rebuilt.Month()) != month || rebuilt.Day() != day {
		return "", invalidDate(trimmed)
	}

	return trimmed, nil
}

func invalidDate(input string) *ToolError {
	return NewValidationError(
		fmt.Sprintf("invalid date %q: expected YYYY-MM-DD or the keyword \"yesterday\"", input),
		"Pass an absolute calendar date like 2026-01-31, or the literal keyword \"yesterday\".",
	)
}
