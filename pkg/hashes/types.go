// Package hashes implements the password hashing schemes the gate can
// verify stored credentials against. The set is closed: plain, Unix
// crypt, MD5, base64 and the salted-SHA1 NetEpi scheme. A verifier is
// selected once from configuration and held as a value.
package hashes

import "errors"

// Verifier checks a submitted password against a stored value.
type Verifier interface {
	// VerifyPassword returns nil when submitted matches stored and
	// ErrMismatch (or a format error) otherwise. The stored value is
	// never mutated.
	VerifyPassword(stored, submitted string) error

	// Transform returns the submitted password in the form this scheme
	// compares against the stored value. The access log records this
	// form rather than the cleartext submission.
	Transform(stored, submitted string) string
}

var (
	// ErrMismatch is returned when a password does not verify.
	ErrMismatch = errors.New("password mismatch")

	// ErrBadHash is returned when a stored value is not in the format
	// the scheme expects.
	ErrBadHash = errors.New("malformed stored hash")
)
