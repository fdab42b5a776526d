// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO = "2006-01-02"
	DateLayoutUS  = "01/02/2006"
)

// CommonFormats is the list of formats tried when parsing dates coming
// out of Alma fields. US-style first, since that is what the export uses.
var CommonFormats = []string{
	DateLayoutUS,
	DateLayoutISO,
	"01-02-2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}
