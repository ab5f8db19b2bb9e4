package schtasks

import "strings"

var dayCodes = map[string]string{
	"MON": "MON", "MONDAY": "MON",
	"TUE": "TUE", "TUESDAY": "TUE",
	"WED": "WED", "WEDNESDAY": "WED",
	"THU": "THU", "THURSDAY": "THU",
	"FRI": "FRI", "FRIDAY": "FRI",
	"SAT": "SAT", "SATURDAY": "SAT",
	"SUN": "SUN", "SUNDAY": "SUN",
}

var monthCodes = map[string]string{
	"JAN": "JAN", "JANUARY": "JAN",
	"FEB": "FEB", "FEBRUARY": "FEB",
	"MAR": "MAR", "MARCH": "MAR",
	"APR": "APR", "APRIL": "APR",
	"MAY": "MAY",
	"JUN": "JUN", "JUNE": "JUN",
	"JUL": "JUL", "JULY": "JUL",
	"AUG": "AUG", "AUGUST": "AUG",
	"SEP": "SEP", "SEPTEMBER": "SEP",
	"OCT": "OCT", "OCTOBER": "OCT",
	"NOV": "NOV", "NOVEMBER": "NOV",
	"DEC": "DEC", "DECEMBER": "DEC",
}

// NormalizeDay maps a full or abbreviated day name, in any case, to its
// three-letter uppercase code.
func NormalizeDay(token string) (string, error) {
	code, ok := dayCodes[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return "", newValidationError("day of week", "%q is not a recognised day name", token)
	}
	return code, nil
}

// NormalizeDays maps each token independently and comma-joins the codes.
// Order is preserved and duplicates are kept.
func NormalizeDays(tokens []string) (string, error) {
	codes := make([]string, 0, len(tokens))
	for _, t := range tokens {
		code, err := NormalizeDay(t)
		if err != nil {
			return "", err
		}
		codes = append(codes, code)
	}
	return strings.Join(codes, ","), nil
}

// NormalizeMonth maps a full or abbreviated month name to its three-letter
// uppercase code. The literal wildcard "*" passes through unchanged.
func NormalizeMonth(token string) (string, error) {
	t := strings.TrimSpace(token)
	if t == "*" {
		return "*", nil
	}
	code, ok := monthCodes[strings.ToUpper(t)]
	if !ok {
		return "", newValidationError("month", "%q is not a recognised month name", token)
	}
	return code, nil
}

// NormalizeMonths maps each token independently and comma-joins the codes.
func NormalizeMonths(tokens []string) (string, error) {
	codes := make([]string, 0, len(tokens))
	for _, t := range tokens {
		code, err := NormalizeMonth(t)
		if err != nil {
			return "", err
		}
		codes = append(codes, code)
	}
	return strings.Join(codes, ","), nil
}
