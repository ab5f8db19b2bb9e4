package schtasks

import (
	"regexp"
	"strings"
	"time"
)

const maxTaskNameLen = 238

// invalidTaskNameChars are forbidden in task names. Backslash is allowed
// because it separates task folders.
const invalidTaskNameChars = `<>:"/|?*`

// ValidateTaskName checks a task name, optionally folder-prefixed, against
// the scheduler tool's naming rules.
func ValidateTaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return newValidationError("task name", "name cannot be empty")
	}
	if len(name) > maxTaskNameLen {
		return newValidationError("task name", "name exceeds %d characters", maxTaskNameLen)
	}
	if i := strings.IndexAny(name, invalidTaskNameChars); i >= 0 {
		return newValidationError("task name", "name contains forbidden character %q", name[i])
	}
	return nil
}

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateTime checks a 24-hour H:MM or HH:MM time string.
func ValidateTime(s string) error {
	if !timePattern.MatchString(s) {
		return newValidationError("time", "%q is not a valid 24-hour HH:MM time", s)
	}
	return nil
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), // YYYY/MM/DD
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), // DD/MM/YYYY
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), // YYYY-MM-DD
}

// NormalizeDate accepts a date string in one of the three supported shapes
// (returned unchanged) or a time.Time (formatted as YYYY/MM/DD).
func NormalizeDate(v interface{}) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.Format("2006/01/02"), nil
	case string:
		for _, p := range datePatterns {
			if p.MatchString(d) {
				return d, nil
			}
		}
		return "", newValidationError("date", "%q does not match YYYY/MM/DD, DD/MM/YYYY or YYYY-MM-DD", d)
	default:
		return "", newValidationError("date", "unsupported date value of type %T", v)
	}
}

// Inclusive bounds accepted by the scheduler tool.
const (
	minInterval = 1
	maxInterval = 599940 // /ri repetition interval, minutes

	minIdleTime = 1
	maxIdleTime = 999 // /i idle minutes

	minDayOfMonth = 1
	maxDayOfMonth = 31
)

func validateRange(field string, v, min, max int) error {
	if v < min || v > max {
		return newValidationError(field, "%d is outside the accepted range %d-%d", v, min, max)
	}
	return nil
}

// ValidateInterval checks the /ri repetition interval in minutes.
func ValidateInterval(v int) error {
	return validateRange("repetition interval", v, minInterval, maxInterval)
}

// ValidateIdleTime checks the /i idle wait in minutes.
func ValidateIdleTime(v int) error {
	return validateRange("idle time", v, minIdleTime, maxIdleTime)
}

func validateDayOfMonth(v int) error {
	return validateRange("day of month", v, minDayOfMonth, maxDayOfMonth)
}

// normalizeRunLevel folds a run level token to one of the two accepted
// privilege levels.
func normalizeRunLevel(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIMITED":
		return "LIMITED", nil
	case "HIGHEST":
		return "HIGHEST", nil
	default:
		return "", newValidationError("run level", "%q must be LIMITED or HIGHEST", s)
	}
}
