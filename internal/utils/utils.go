package utils

import "regexp"

var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail is intentionally loose. The only authoritative check is
// whether the confirmation mail arrives.
func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}
