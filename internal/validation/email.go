// Package validation holds the input checks used by prompts.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
)

// Kind selects the check a prompt applies.
type Kind int

const (
	None Kind = iota
	Email
)

func (k Kind) String() string {
	if k == Email {
		return "email"
	}
	return "none"
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-']+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// IsEmail reports whether s is a bare address. It must match the pattern and
// parse as an RFC 5322 address with nothing but the address itself.
func IsEmail(s string) bool {
	if !emailPattern.MatchString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && strings.EqualFold(addr.Address, s)
}

// Check applies kind to s and returns a user-facing message when it fails.
func Check(kind Kind, s string) (ok bool, message string) {
	switch kind {
	case Email:
		if !IsEmail(s) {
			return false, "Invalid email format. Please enter a valid email address."
		}
	}
	return true, ""
}
