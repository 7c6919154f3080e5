// Package validate holds the pure syntax checks gating registration. All
// functions are total: empty or malformed input yields false, never an error.
package validate

import (
	"net/url"
	"regexp"

	"github.com/asaskevich/govalidator"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	einRe   = regexp.MustCompile(`^\d{2}-\d{7}$`)
)

// Email reports whether s has local-part/domain/TLD shape. No DNS or mailbox
// check is performed.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// URL reports whether s parses as an absolute URL with a scheme and host.
func URL(s string) bool {
	if !govalidator.IsRequestURL(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// EIN reports whether s matches the Employer Identification Number format:
// exactly two digits, a hyphen, seven digits.
func EIN(s string) bool {
	return einRe.MatchString(s)
}
