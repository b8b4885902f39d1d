// Package validation checks usernames and dates of birth before anything is
// written to or read from the store.
package validation

import (
	"errors"
	"fmt"
	"unicode"

	"cloud.google.com/go/civil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Client errors. All of them are reported to HTTP callers as 400 Bad Request.
var (
	ErrInvalidUsername   = errors.New("username must be alphabetic characters only")
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidDateFormat = errors.New("date supplied is not a valid YYYY-MM-DD date")
	ErrFutureDate        = errors.New("date supplied is in the future")
)

var lower = cases.Lower(language.Und)

// Username checks that raw is a non-empty string of letters and returns its
// normalized, lowercase form.
func Username(raw string) (string, error) {
	name := norm.NFC.String(raw)
	if name == "" {
		return "", fmt.Errorf("%w: username is empty", ErrInvalidUsername)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidUsername, raw)
		}
	}
	return lower.String(name), nil
}

// DateOfBirth parses raw as a calendar date and rejects dates after today.
func DateOfBirth(raw string, today civil.Date) (civil.Date, error) {
	d, err := civil.ParseDate(raw)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	if d.After(today) {
		return civil.Date{}, fmt.Errorf("%w: %s is after %s", ErrFutureDate, d, today)
	}
	return d, nil
}

// MissingField reports an absent request field.
func MissingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}

// IsClientError reports whether err is caused by invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidDateFormat) ||
		errors.Is(err, ErrFutureDate)
}
