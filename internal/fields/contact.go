package fields

import (
	"regexp"
	"strings"
)

var (
	// phoneSegment is a loosely formatted number: digits mixed with brackets, plus, spaces and dashes.
	phoneSegment = regexp.MustCompile(`[0-9()+ \-]{11,20}`)
	phoneRun     = regexp.MustCompile(`(?:^|[^0-9])(1[3-9][0-9]{9})(?:[^0-9]|$)`)
	mobile       = regexp.MustCompile(`^1[3-9][0-9]{9}$`)

	emailRe = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9._%+\-]{2,}@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

var countryCodes = []string{"0086", "86"}

// phoneByLooseSegment accepts numbers written with separators, e.g. "(+86) 159-2842-3292".
func phoneByLooseSegment(text string) (string, bool) {
	for _, seg := range phoneSegment.FindAllString(text, -1) {
		digits := stripCountryCode(keepDigits(seg))
		if mobile.MatchString(digits) {
			return digits, true
		}
	}
	return "", false
}

// phoneByStrictRun finds a bare 11-digit mobile number not embedded in a longer number.
func phoneByStrictRun(text string) (string, bool) {
	m := phoneRun.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func keepDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// stripCountryCode drops a leading 86/0086 when what remains is exactly a mobile number's length.
func stripCountryCode(digits string) string {
	for _, cc := range countryCodes {
		if len(digits) == len(cc)+11 && strings.HasPrefix(digits, cc) {
			return digits[len(cc):]
		}
	}
	return digits
}

// longestEmail returns the longest address so that a short sub-match never hides the real one.
func longestEmail(text string) (string, bool) {
	best := ""
	for _, m := range emailRe.FindAllString(text, -1) {
		if len(m) > len(best) {
			best = m
		}
	}
	return best, best != ""
}
