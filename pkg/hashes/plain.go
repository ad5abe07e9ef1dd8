package hashes

import "strings"

// Plain compares the submitted password directly against the stored
// value, used when the directory stores cleartext passwords. IgnoreCase
// selects a case-insensitive comparison.
type Plain struct {
	IgnoreCase bool
}

// VerifyPassword implements Verifier.
func (p Plain) VerifyPassword(stored, submitted string) error {
	if p.IgnoreCase {
		if strings.EqualFold(stored, submitted) {
			return nil
		}
		return ErrMismatch
	}
	if stored == submitted {
		return nil
	}
	return ErrMismatch
}

// Transform implements Verifier. Plain storage compares the submission
// as-is.
func (p Plain) Transform(stored, submitted string) string {
	return submitted
}
