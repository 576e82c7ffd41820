package utils

import "strings"

// NormalizeWord trims and uppercases s for use as a dictionary key.
// It reports false for empty input or anything outside the ASCII letters A-Z,
// such lines are skipped by the loaders rather than treated as errors.
func NormalizeWord(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return "", false
	}
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c, ok := NormalizeLetter(s[i])
		if !ok {
			return "", false
		}
		buf[i] = c
	}
	return string(buf), true
}

// NormalizeLetter maps an ASCII letter to its uppercase form.
func NormalizeLetter(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c, true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A', true
	}
	return 0, false
}
