// Package isbn normalizes raw ISBN input into the canonical 13-digit form
// used as the lookup and storage identifier.
package isbn

import "strings"

// Normalize converts a raw identifier string into canonical ISBN-13 form.
// It strips everything except digits and the check letter X (folded to
// uppercase), accepts only filtered lengths of 10 or 13, and converts
// 10-character candidates to ISBN-13. The empty string signals invalid
// input. A 13-character candidate is returned as-is without checksum
// validation; the accepted-input behavior is kept compatible with the
// existing databases and CSV exports.
func Normalize(raw string) string {
	s := filterDigitsX(raw)
	switch len(s) {
	case 13:
		return s
	case 10:
		return convert10to13(s)
	default:
		return ""
	}
}

// filterDigitsX keeps digits and the check letter X, folding x to X.
func filterDigitsX(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == 'X' || c == 'x':
			b.WriteByte('X')
		}
	}
	return b.String()
}

// convert10to13 prefixes 978 to the first nine characters and appends the
// ISBN-13 check digit computed with alternating 1/3 weights.
func convert10to13(s10 string) string {
	core := "978" + s10[:9]
	sum := 0
	for i := 0; i < len(core); i++ {
		d := int(core[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += 3 * d
		}
	}
	check := (10 - sum%10) % 10
	return core + string(rune('0'+check))
}
