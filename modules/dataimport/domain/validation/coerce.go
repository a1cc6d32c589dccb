package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects the coercer applied to a raw cell for a given target field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindDuration Kind = "duration"
	KindMoney    Kind = "money"
	KindDateTime Kind = "datetime"
)

// Error messages are part of the user-facing contract; do not reword.
var (
	ErrInvalidEmail    = errors.New("Invalid email format")
	ErrInvalidPhone    = errors.New("Invalid phone format")
	ErrInvalidDuration = errors.New("Duration must be a positive integer")
	ErrInvalidPrice    = errors.New("Invalid price")
	ErrInvalidDateTime = errors.New("Could not parse date/time")
)

var (
	emailRx    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	slashDotRx = regexp.MustCompile(`^(\d{1,4})[./](\d{1,2})[./](\d{4})\s+(\d{1,2}):(\d{2})$`)
	dashRx     = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{2})$`)
)

var minorUnitsThreshold = decimal.NewFromInt(10000)

// Coerce converts one trimmed, non-empty raw cell into a typed value. Empty
// cells are the caller's concern: they mean "not provided", never an error.
func Coerce(kind Kind, raw string) (any, error) {
	switch kind {
	case KindText:
		return raw, nil
	case KindEmail:
		return coerceEmail(raw)
	case KindPhone:
		return coercePhone(raw)
	case KindDuration:
		return coerceDuration(raw)
	case KindMoney:
		return coerceMoney(raw)
	case KindDateTime:
		return coerceDateTime(raw)
	default:
		return raw, nil
	}
}

func coerceEmail(raw string) (any, error) {
	if !emailRx.MatchString(raw) {
		return nil, ErrInvalidEmail
	}
	return raw, nil
}

func coercePhone(raw string) (any, error) {
	digits := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '(' || r == ')' || r == '-':
		default:
			return nil, ErrInvalidPhone
		}
	}
	if digits < 6 {
		return nil, ErrInvalidPhone
	}
	return raw, nil
}

func coerceDuration(raw string) (any, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil, ErrInvalidDuration
	}
	return int64(n), nil
}

func coerceMoney(raw string) (any, error) {
	cents, err := CoerceMoney(raw)
	if err != nil {
		return nil, err
	}
	return cents, nil
}

// CoerceMoney normalizes a price cell to minor currency units. Amounts with a
// decimal point, or below 10000, are read as major units and multiplied by
// 100; anything else is assumed to already be minor units. The magnitude
// heuristic is ambiguous for plain integers between 100 and 9999 but matches
// the historical importer behavior that tenants' exports rely on.
func CoerceMoney(raw string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			return r
		default:
			return -1
		}
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, ErrInvalidPrice
	}

	if strings.Contains(cleaned, ".") || d.LessThan(minorUnitsThreshold) {
		return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
	}
	return d.Round(0).IntPart(), nil
}

// CoerceDateTime accepts RFC 3339 timestamps and two legacy export layouts:
// "D/M/YYYY HH:MM" (also with dots) and "YYYY-M-D HH:MM". For the slash form,
// a first group above 31 is read as the year; otherwise day-first wins. This
// cannot distinguish 03/04/2024 day-first from month-first and deliberately
// does not try to guess locale.
func CoerceDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}

	var year, month, day, hour, minute int
	if m := slashDotRx.FindStringSubmatch(raw); m != nil {
		first := mustAtoi(m[1])
		if first > 31 {
			year, month, day = first, mustAtoi(m[2]), mustAtoi(m[3])
		} else {
			day, month, year = first, mustAtoi(m[2]), mustAtoi(m[3])
		}
		hour, minute = mustAtoi(m[4]), mustAtoi(m[5])
	} else if m := dashRx.FindStringSubmatch(raw); m != nil {
		year, month, day = mustAtoi(m[1]), mustAtoi(m[2]), mustAtoi(m[3])
		hour, minute = mustAtoi(m[4]), mustAtoi(m[5])
	} else {
		return time.Time{}, ErrInvalidDateTime
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, ErrInvalidDateTime
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 31), which would silently accept
	// an invalid calendar date.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, ErrInvalidDateTime
	}
	return t, nil
}

func coerceDateTime(raw string) (any, error) {
	t, err := CoerceDateTime(raw)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
