package service

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input limits.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
	MaxNameLength     = 50
	MaxRecipeIDLength = 64
)

// normalizeEmail trims and lower-cases email and rejects anything that is
// not a bare address.
func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email", "must be a valid email address")
	}
	return strings.ToLower(email), nil
}

func validatePassword(field, password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return invalid(field, "must be at least %d characters", MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return invalid(field, "must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// validateStrongPassword also requires an upper case letter, a lower case
// letter and a digit.
func validateStrongPassword(field, password string) error {
	if err := validatePassword(field, password); err != nil {
		return err
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return invalid(field, "must contain an upper case letter, a lower case letter and a digit")
	}
	return nil
}

// optionalName trims s; blank names become nil.
func optionalName(field, s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return nil, invalid(field, "must be at most %d characters", MaxNameLength)
	}
	return &s, nil
}

// requiredName validates a name that is being set; nil means unchanged.
func requiredName(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	name, err := optionalName(field, *v)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return nil, invalid(field, "must not be blank")
	}
	return name, nil
}

func validateHTTPURL(field, raw string, maxLen int) error {
	if len(raw) > maxLen {
		return invalid(field, "must be at most %d characters", maxLen)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid(field, "must be an http or https URL")
	}
	return nil
}
