package hashes

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

// netepiLetters is the salt/prefix alphabet, searched in this exact
// order by the legacy fallback.
const netepiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NetEpi verifies NetEpi "portable" salted-SHA1 hashes of the form
//
//	$S$<salt>$<base64 sha1 of salt+password>
//
// The scheme embeds its own salt so verification needs no out-of-band
// parameters. Stored values without a leading '$' are legacy two-letter
// prefixed MD5 hashes, accepted only when Legacy is set.
type NetEpi struct {
	// Legacy enables the old-password fallback: an exhaustive search
	// over a two-letter prefix space. Weaker than a normal hash; kept
	// as an opt-in compatibility path.
	Legacy bool
}

// VerifyPassword implements Verifier.
func (n NetEpi) VerifyPassword(stored, submitted string) error {
	if !strings.HasPrefix(stored, "$") {
		if !n.Legacy {
			return ErrMismatch
		}
		if _, ok := legacySearch(stored, submitted); ok {
			return nil
		}
		return ErrMismatch
	}

	computed, err := netEpiRecompute(stored, submitted)
	if err != nil {
		return err
	}
	if computed == stored {
		return nil
	}
	return ErrMismatch
}

// Transform implements Verifier. For legacy stored values it returns the
// matched candidate hash, or the submission unchanged when nothing
// matches.
func (n NetEpi) Transform(stored, submitted string) string {
	if !strings.HasPrefix(stored, "$") {
		if n.Legacy {
			if h, ok := legacySearch(stored, submitted); ok {
				return h
			}
		}
		return submitted
	}
	computed, err := netEpiRecompute(stored, submitted)
	if err != nil {
		return submitted
	}
	return computed
}

// netEpiRecompute extracts the salt from a $S$ stored value and rehashes
// the submission under it.
func netEpiRecompute(stored, submitted string) (string, error) {
	parts := strings.SplitN(stored, "$", 4)
	// parts[0] is the empty string before the leading '$'.
	if len(parts) != 4 || parts[1] != "S" || parts[2] == "" {
		return "", ErrBadHash
	}
	return NetEpiHash(submitted, parts[2]), nil
}

// legacySearch brute-forces the two-letter prefix space in a fixed
// order, first letter outer, second inner. The first match wins.
func legacySearch(stored, submitted string) (string, bool) {
	for i := 0; i < len(netepiLetters); i++ {
		for j := 0; j < len(netepiLetters); j++ {
			candidate := NetEpiLegacyHash(submitted, netepiLetters[i:i+1]+netepiLetters[j:j+1])
			if strings.EqualFold(stored, candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// NetEpiHash builds the stored form of a password under the given salt:
// base64 SHA-1 of salt+password behind a $S$<salt>$ prefix.
func NetEpiHash(password, salt string) string {
	sum := sha1.Sum([]byte(salt + password))
	return "$S$" + salt + "$" + base64.StdEncoding.EncodeToString(sum[:])
}

// NetEpiLegacyHash builds a legacy stored value: the MD5 hex digest of
// the two-letter prefix prepended to the password.
func NetEpiLegacyHash(password, prefix string) string {
	return MD5Hash(prefix + password)
}
