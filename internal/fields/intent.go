package fields

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxBarePosition caps an unsplit position phrase; longer spans are usually several fields run together.
const maxBarePosition = 15

var (
	positionLabels = compileLabels([]string{"应聘岗位", "期望职位", "求职意向", "目标职位", "Position"}, `([^\n]+)`)
	locationLabels = compileLabels([]string{"期望城市", "工作地点", "期望地点"}, `([^\n|｜]+)`)
	intentLabels   = compileLabels([]string{"求职意向"}, `([^\n]+)`)
	salaryLabels   = compileLabels([]string{"期望薪资", "薪资要求", "期望工资"}, `([^\n|｜]+)`)

	salaryTokens = []*regexp.Regexp{
		regexp.MustCompile(`[0-9]+[-~～][0-9]+[kK]`),
		regexp.MustCompile(`[0-9]+[kK][-~～][0-9]+[kK]`),
		regexp.MustCompile(`[0-9]+[-~～][0-9]+`),
	}
)

// phraseDelimiters are tried in order, whitespace first.
var phraseDelimiters = []func(string) []string{
	strings.Fields,
	func(s string) []string { return strings.Split(s, "|") },
	func(s string) []string { return strings.Split(s, "/") },
	func(s string) []string { return strings.Split(s, "·") },
}

// splitPhrase returns, for each delimiter that cuts phrase into at least two non-empty
// parts, those trimmed parts.
func splitPhrase(phrase string) [][]string {
	var out [][]string
	for _, split := range phraseDelimiters {
		var parts []string
		for _, p := range split(phrase) {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			out = append(out, parts)
		}
	}
	return out
}

func (e *Extractor) positionByLabel(text string) (string, bool) {
	for _, phrase := range labeledValues(positionLabels, text) {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" {
			continue
		}
		splits := splitPhrase(phrase)
		for _, parts := range splits {
			if !e.isCity(parts[0]) {
				return parts[0], true
			}
		}
		if len(splits) == 0 && utf8.RuneCountInString(phrase) <= maxBarePosition {
			return phrase, true
		}
	}
	return "", false
}

func (e *Extractor) locationByLabel(text string) (string, bool) {
	for _, span := range labeledValues(locationLabels, text) {
		if city, ok := e.cityIn(span); ok {
			return city, true
		}
	}
	return "", false
}

// locationByIntent reads "求职意向：Java开发 成都" and keeps the second part when it is a city.
func (e *Extractor) locationByIntent(text string) (string, bool) {
	for _, phrase := range labeledValues(intentLabels, text) {
		for _, parts := range splitPhrase(phrase) {
			if e.isCity(parts[1]) {
				return parts[1], true
			}
		}
	}
	return "", false
}

// cityIn returns the known city that starts earliest in span; on a tie the longer name wins.
func (e *Extractor) cityIn(span string) (string, bool) {
	best, bestAt := "", -1
	for c := range e.cities {
		at := strings.Index(span, c)
		if at < 0 {
			continue
		}
		if bestAt < 0 || at < bestAt || (at == bestAt && len(c) > len(best)) {
			best, bestAt = c, at
		}
	}
	return best, bestAt >= 0
}

func salaryByLabel(text string) (string, bool) {
	for _, span := range labeledValues(salaryLabels, text) {
		for _, re := range salaryTokens {
			if tok := re.FindString(span); tok != "" {
				return strings.ReplaceAll(tok, "k", "K"), true
			}
		}
	}
	return "", false
}
