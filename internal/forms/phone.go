package forms

import (
	"regexp"
	"strings"
)

// phoneRe accepts three digit groups with optional parentheses around the
// area code and an optional "-" or " " between groups: (123) 456-7890,
// 123 456 7890, 1234567890, 123-456-7890. Anchored at the start; trailing
// input after the subscriber number is tolerated.
var phoneRe = regexp.MustCompile(`^\(?(\d{3})\)?[ -]?(\d{3})[ -]?(\d{4})`)

// NormalizePhone rewrites a phone number into the canonical NNN-NNN-NNNN
// display form. The input must already have passed phone validation;
// NormalizePhone is not a general-purpose normalizer and panics on input
// that does not start with the accepted pattern.
func NormalizePhone(phone string) string {
	m := phoneRe.FindStringSubmatch(phone)
	return strings.Join([]string{m[1], m[2], m[3]}, "-")
}
