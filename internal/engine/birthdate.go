package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ErrInvalidBirthDate is returned when the birth date input is not a valid
// YYYY-MM-DD calendar date. Callers compare with errors.Is.
var ErrInvalidBirthDate = errors.New(config.ErrInvalidBirthDate)

// ParseBirthDate validates the user input and returns midnight UTC of that day.
// Out-of-range days such as 1991-02-30 are rejected, not normalized.
func ParseBirthDate(input string) (time.Time, error) {
	value := strings.TrimSpace(input)
	t, err := time.Parse(config.BirthDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidBirthDate, err)
	}
	return t, nil
}

// FormatBirthDate is the inverse of ParseBirthDate.
func FormatBirthDate(t time.Time) string {
	return t.Format(config.BirthDateLayout)
}
