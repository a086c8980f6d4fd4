package fields

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// colon matches an ASCII or full-width colon with optional surrounding whitespace.
const colon = `\s*[：:]\s*`

// hanClass is the CJK Unified Ideographs block, U+4E00 to U+9FFF.
const hanClass = `[\x{4e00}-\x{9fff}]`

// label turns a field keyword into a pattern. Han keywords may have whitespace between
// their characters ("姓 名"); Latin keywords match case-insensitively.
func label(word string) string {
	if isASCII(word) {
		return `(?i:` + regexp.QuoteMeta(word) + `)`
	}
	var b strings.Builder
	i := 0
	for _, r := range word {
		if i > 0 {
			b.WriteString(`\s*`)
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
		i++
	}
	return b.String()
}

// compileLabels builds one "label + colon + capture" pattern per label, keeping order.
func compileLabels(labels []string, capture string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(labels))
	for _, l := range labels {
		out = append(out, regexp.MustCompile(label(l)+colon+capture))
	}
	return out
}

// labeledValues returns every capture of every pattern, pattern order first.
func labeledValues(patterns []*regexp.Regexp, text string) []string {
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1])
		}
	}
	return out
}

// head returns at most the first n runes of s.
func head(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
