package schtasks

import (
	"fmt"
	"strconv"
	"strings"
)

// ScheduleType is the recurrence family passed to the scheduler's /sc flag.
type ScheduleType string

const (
	ScheduleMinute  ScheduleType = "MINUTE"
	ScheduleHourly  ScheduleType = "HOURLY"
	ScheduleDaily   ScheduleType = "DAILY"
	ScheduleWeekly  ScheduleType = "WEEKLY"
	ScheduleMonthly ScheduleType = "MONTHLY"
	ScheduleOnce    ScheduleType = "ONCE"
	ScheduleOnStart ScheduleType = "ONSTART"
	ScheduleOnLogon ScheduleType = "ONLOGON"
	ScheduleOnIdle  ScheduleType = "ONIDLE"
)

// ParseScheduleType maps a case-insensitive token to a schedule family.
func ParseScheduleType(s string) (ScheduleType, error) {
	switch ScheduleType(strings.ToUpper(strings.TrimSpace(s))) {
	case ScheduleMinute:
		return ScheduleMinute, nil
	case ScheduleHourly:
		return ScheduleHourly, nil
	case ScheduleDaily:
		return ScheduleDaily, nil
	case ScheduleWeekly:
		return ScheduleWeekly, nil
	case ScheduleMonthly:
		return ScheduleMonthly, nil
	case ScheduleOnce:
		return ScheduleOnce, nil
	case ScheduleOnStart:
		return ScheduleOnStart, nil
	case ScheduleOnLogon:
		return ScheduleOnLogon, nil
	case ScheduleOnIdle:
		return ScheduleOnIdle, nil
	default:
		return "", newValidationError("schedule type", "%q is not a recognised schedule family", s)
	}
}

// Per-family bounds for the /mo repeat-count modifier.
var modifierBounds = map[ScheduleType][2]int{
	ScheduleMinute:  {1, 1439},
	ScheduleHourly:  {1, 23},
	ScheduleDaily:   {1, 365},
	ScheduleWeekly:  {1, 52},
	ScheduleMonthly: {1, 12},
}

func validateNumericModifier(st ScheduleType, modifier string) error {
	bounds, ok := modifierBounds[st]
	if !ok {
		return newValidationError("modifier", "schedule family %s does not take a repeat count", st)
	}
	n, err := strconv.Atoi(strings.TrimSpace(modifier))
	if err != nil {
		return newValidationError("modifier", "%q is not an integer repeat count", modifier)
	}
	field := fmt.Sprintf("%s modifier", strings.ToLower(string(st)))
	return validateRange(field, n, bounds[0], bounds[1])
}

// Monthly ordinal week-of-month modifiers. Each requires a day of week.
var ordinalModifiers = map[string]bool{
	"FIRST":  true,
	"SECOND": true,
	"THIRD":  true,
	"FOURTH": true,
	"LAST":   true,
}

// lastDayModifier schedules on the last calendar day of the month; any
// supplied day is ignored.
const lastDayModifier = "LASTDAY"

// monthlyMode distinguishes the three monthly modifier modes plus "no
// modifier", which behaves like the numeric mode for day handling.
type monthlyMode int

const (
	monthlyNumeric monthlyMode = iota
	monthlyOrdinal
	monthlyLastDay
)

// resolveMonthlyModifier validates a monthly modifier and reports which mode
// it selects. The returned warning is advisory only (day ignored under
// LASTDAY) and never blocks the operation.
func resolveMonthlyModifier(modifier string, hasDay bool) (mode monthlyMode, warning string, err error) {
	m := strings.ToUpper(strings.TrimSpace(modifier))
	switch {
	case m == "":
		return monthlyNumeric, "", nil
	case m == lastDayModifier:
		if hasDay {
			warning = "day is ignored when the monthly modifier is LASTDAY"
		}
		return monthlyLastDay, warning, nil
	case ordinalModifiers[m]:
		if !hasDay {
			return 0, "", newValidationError("day", "a day of week is required with the %s monthly modifier", m)
		}
		return monthlyOrdinal, "", nil
	default:
		if err := validateNumericModifier(ScheduleMonthly, m); err != nil {
			return 0, "", err
		}
		return monthlyNumeric, "", nil
	}
}
