package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDuration = errors.New("invalid duration: use hh:mm")

// ParseDuration parses an "HH:MM" countdown into a duration.
// Both parts must be non-negative integers; minutes may exceed 59.
func ParseDuration(text string) (time.Duration, error) {
	hoursText, minutesText, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return 0, ErrInvalidDuration
	}

	hours, err := parseComponent(hoursText)
	if err != nil {
		return 0, err
	}
	minutes, err := parseComponent(minutesText)
	if err != nil {
		return 0, err
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

func parseComponent(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, "-") {
		return 0, ErrInvalidDuration
	}

	value, err := strconv.Atoi(text)
	if err != nil || value < 0 {
		return 0, ErrInvalidDuration
	}

	// keeps the product below the time.Duration range
	if value > 100000 {
		return 0, ErrInvalidDuration
	}

	return value, nil
}
