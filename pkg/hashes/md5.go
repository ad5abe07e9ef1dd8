package hashes

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// MD5 verifies hex-encoded MD5 digests. Stored digests are compared
// case-insensitively, matching the original scheme's behavior.
type MD5 struct{}

// VerifyPassword implements Verifier.
func (MD5) VerifyPassword(stored, submitted string) error {
	if strings.EqualFold(stored, MD5Hash(submitted)) {
		return nil
	}
	return ErrMismatch
}

// Transform implements Verifier.
func (MD5) Transform(stored, submitted string) string {
	return MD5Hash(submitted)
}

// MD5Hash returns the lowercase hex MD5 digest of password.
func MD5Hash(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
