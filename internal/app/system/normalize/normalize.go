// internal/app/system/normalize/normalize.go
package normalize

import (
	"net/url"
	"strings"
)

// Email trims and lower-cases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EmailParam decodes a percent-encoded email taken from a URL path segment
// and normalizes it. A segment that fails to decode is normalized as-is.
func EmailParam(raw string) string {
	if dec, err := url.PathUnescape(raw); err == nil {
		raw = dec
	}
	return Email(raw)
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Status lower-cases and trims a status value (user or request).
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role lower-cases and trims a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BloodGroup upper-cases and strips spaces, so " ab+ " becomes "AB+".
func BloodGroup(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

// BloodGroupParam normalizes a blood group read from a query string, where
// an unencoded "+" arrives as a space: "A " and "ab " mean A+ and AB+.
func BloodGroupParam(raw string) string {
	s := strings.TrimLeft(raw, " ")
	if strings.HasSuffix(s, " ") && !strings.ContainsAny(s, "+-") {
		s = strings.TrimRight(s, " ") + "+"
	}
	return BloodGroup(s)
}
