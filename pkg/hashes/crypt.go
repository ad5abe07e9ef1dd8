package hashes

import (
	"strings"

	"github.com/digitive/crypt"
)

// Crypt verifies traditional Unix crypt(3) hashes. The salt is the
// leading two characters of the stored hash. IgnoreCase relaxes the
// final comparison; the default is byte-exact.
type Crypt struct {
	IgnoreCase bool
}

// VerifyPassword implements Verifier.
func (c Crypt) VerifyPassword(stored, submitted string) error {
	computed, err := c.recompute(stored, submitted)
	if err != nil {
		return err
	}
	if c.IgnoreCase {
		if strings.EqualFold(computed, stored) {
			return nil
		}
		return ErrMismatch
	}
	if computed == stored {
		return nil
	}
	return ErrMismatch
}

// Transform implements Verifier, returning crypt(submitted) under the
// stored hash's salt.
func (c Crypt) Transform(stored, submitted string) string {
	computed, err := c.recompute(stored, submitted)
	if err != nil {
		return submitted
	}
	return computed
}

func (c Crypt) recompute(stored, submitted string) (string, error) {
	if len(stored) < 2 {
		return "", ErrBadHash
	}
	return crypt.Crypt(submitted, stored[:2])
}

// CryptHash hashes a password with crypt(3) under the given two
// character salt, for provisioning stored values.
func CryptHash(password, salt string) (string, error) {
	if len(salt) < 2 {
		return "", ErrBadHash
	}
	return crypt.Crypt(password, salt[:2])
}
