package utils

import (
	"fmt"
	"regexp"
	"time"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// ValidateISODate checks a YYYY-MM-DD string and returns it unchanged.
// Snapshot keys are compared lexically so the format matters more than the
// parsed value.
func ValidateISODate(dateStr string) (string, error) {
	if !isoDatePattern.MatchString(dateStr) {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}

	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return "", err
	}

	return dateStr, nil
}
