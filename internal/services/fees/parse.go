package fees

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice reads a user-typed amount such as "250 000", "250000,50" or
// "250.000 €". ok is false when nothing usable was typed.
func ParsePrice(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '€', r == '\'', r == '_':
		default:
			return 0, false
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	// A comma is always the decimal mark. Dots are thousands separators
	// unless a single dot is followed by one or two digits.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if n := strings.Count(s, "."); n > 1 || (n == 1 && len(s)-strings.Index(s, ".")-1 == 3) {
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
