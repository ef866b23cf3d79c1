package validation

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsValidEmail reports whether value is a string shaped like local@domain.tld.
// Anything that is not a string, including nil, is not an email.
func IsValidEmail(value any) bool {
	s, ok := value.(string)
	if !ok || s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}
