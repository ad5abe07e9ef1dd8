package hashes

import (
	"encoding/base64"
	"strings"
)

// Base64 verifies base64-encoded stored passwords. Like MD5, stored
// values are compared case-insensitively.
type Base64 struct{}

// VerifyPassword implements Verifier.
func (Base64) VerifyPassword(stored, submitted string) error {
	if strings.EqualFold(stored, Base64Hash(submitted)) {
		return nil
	}
	return ErrMismatch
}

// Transform implements Verifier.
func (Base64) Transform(stored, submitted string) string {
	return Base64Hash(submitted)
}

// Base64Hash returns the standard base64 encoding of password.
func Base64Hash(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}
