package domain

import (
	"regexp"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// DateKey formats t as a daily challenge key in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateKeyLayout)
}

// ValidateDateKey checks that key is a calendar date in YYYY-MM-DD form.
func ValidateDateKey(key string) error {
	if _, err := time.Parse(DateKeyLayout, key); err != nil {
		return NewValidationError("date_key", "must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ValidateSlug checks a roster challenge slug.
func ValidateSlug(slug string) error {
	if len(slug) == 0 || len(slug) > 64 || !slugPattern.MatchString(slug) {
		return NewValidationError("slug", "must be lowercase letters, digits and dashes")
	}
	return nil
}
