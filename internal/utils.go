// Package internal provides small helpers shared by the storage, content and
// auth packages.
package internal

import (
	"regexp"
	"strings"
)

// EmailRegexTemplate is the accepted shape of an email address
// (local@domain.tld). It is also used by the collection validators.
const EmailRegexTemplate = `^[\w.\+\.\-]+@([\w\-]+\.)+[\w]{2,}$`

var emailRegex = regexp.MustCompile(EmailRegexTemplate)

// ValidEmail helper function allows to validate an email address.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeEmail trims the email address provided and converts it to lower
// case, so it can be compared and stored consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TrimPtr returns a pointer to the trimmed value of s, or nil if s is nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
