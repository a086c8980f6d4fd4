package fields

import "regexp"

// Strategy is one self-contained way of finding a field in text.
type Strategy func(text string) (string, bool)

// FirstOf tries each strategy in order and returns the first value found.
func FirstOf(strategies ...Strategy) Strategy {
	return func(text string) (string, bool) {
		for _, s := range strategies {
			if v, ok := s(text); ok {
				return v, true
			}
		}
		return "", false
	}
}

// firstMatch returns the first capture of re, or the whole match when re has no group.
func firstMatch(re *regexp.Regexp) Strategy {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		if len(m) > 1 {
			return m[1], true
		}
		return m[0], true
	}
}
