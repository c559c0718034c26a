package plans

import (
	"math"
	"strings"
)

// ParseCredits reads a human formatted integer such as "50,000". Thousands
// separators are dropped, then the leading integer is read the way browsers
// read it: surrounding space and a sign are allowed and parsing stops at the
// first non-digit ("1.5" is 1, "500000 credits" is 500000). ok is false when
// no digit is found or the value overflows int64.
func ParseCredits(raw string) (n int64, ok bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}

		d := int64(r - '0')
		if n > (math.MaxInt64-d)/10 {
			return 0, false
		}

		n = n*10 + d
		digits++
	}

	if digits == 0 {
		return 0, false
	}

	if negative {
		n = -n
	}

	return n, true
}
