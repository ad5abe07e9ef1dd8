// Package sqlescape escapes untrusted strings for embedding in SQL
// string literals. The statements this module sends are literal text by
// contract, so every externally supplied value must pass through Escape
// before interpolation. This is a textual defense, not a parameterized
// query mechanism.
package sqlescape

import "strings"

// Escape doubles every backslash and single quote in s and leaves all
// other bytes unchanged. The result is always at most twice as long as
// the input.
func Escape(s string) string {
	if !strings.ContainsAny(s, `\'`) {
		return s
	}

	var b strings.Builder
	b.Grow(2 * len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`''`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Unescape reverses Escape, collapsing doubled backslashes and quotes.
// Unescape(Escape(s)) == s for every s.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		b.WriteByte(c)
		if i+1 < len(s) && ((c == '\\' && s[i+1] == '\\') || (c == '\'' && s[i+1] == '\'')) {
			i++
		}
	}
	return b.String()
}
