// Package validate holds the structural acceptance rules applied to
// credentials before any lookup or mutation.
package validate

import (
	"regexp"
	"unicode/utf8"
)

// MinPasswordLen is the only password strength requirement.
const MinPasswordLen = 8

// emailRe is an RFC-5322-flavored address grammar: dot-atom or quoted
// local part, then a domain name or a bracketed IPv4 literal.
var emailRe = regexp.MustCompile(`^(?i)(?:[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?|\[(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\])$`)

// Email reports whether candidate is an acceptable address.
func Email(candidate string) bool {
	return emailRe.MatchString(candidate)
}

// Password reports whether candidate meets the minimum length. No
// complexity rules beyond that.
func Password(candidate string) bool {
	return utf8.RuneCountInString(candidate) >= MinPasswordLen
}
