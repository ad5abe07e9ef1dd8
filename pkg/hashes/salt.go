package hashes

import "crypto/rand"

// GenerateSalt returns n random characters drawn from the NetEpi letter
// set, suitable as a NetEpi salt or a crypt(3) salt.
func GenerateSalt(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = netepiLetters[int(b)%len(netepiLetters)]
	}
	return string(buf), nil
}
