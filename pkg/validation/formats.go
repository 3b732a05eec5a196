package validation

import (
	"net/mail"
	"strings"
)

// validEmail reports whether value is an RFC 5322 address with a dotted
// domain part. Bare local domains ("user@localhost") are rejected because
// imported specs always describe public-facing addresses.
func validEmail(value string) bool {
	if _, err := mail.ParseAddress(value); err != nil {
		return false
	}
	parts := strings.Split(value, "@")
	if len(parts) != 2 {
		return false
	}
	return strings.Contains(parts[1], ".")
}
