package fields

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nameLabels = compileLabels([]string{"姓名", "名字", "Name"}, `(\S{2,4})`)

	hanRun  = regexp.MustCompile(hanClass + `{2,4}`)
	hanLine = regexp.MustCompile(`^` + hanClass + `{2,4}$`)
	hanOnly = regexp.MustCompile(`^` + hanClass + `+$`)
)

// positionalLines is how many leading lines may hold the name on a line of its own.
const positionalLines = 3

var defaultExtractor = New()

// IsValidName validates candidate against the built-in title-word set.
func IsValidName(candidate string) bool {
	return defaultExtractor.IsValidName(candidate)
}

// IsValidName reports whether candidate is a plausible person name: 2-4 Han characters
// after trimming, no digits, and not a heading or title word.
func (e *Extractor) IsValidName(candidate string) bool {
	c := strings.TrimSpace(candidate)
	n := utf8.RuneCountInString(c)
	if n < 2 || n > 4 {
		return false
	}
	if e.isTitleWord(c) {
		return false
	}
	if strings.IndexFunc(c, unicode.IsDigit) >= 0 {
		return false
	}
	return hanOnly.MatchString(c)
}

// nameByKeyword looks for "姓名：xxx" style labels.
func (e *Extractor) nameByKeyword(text string) (string, bool) {
	for _, v := range labeledValues(nameLabels, text) {
		if e.IsValidName(v) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// nameByPosition looks at the top of the résumé: first a line that is nothing but a
// short Han run, then any short Han run inside the window.
func (e *Extractor) nameByPosition(text string) (string, bool) {
	window := head(text, e.nameWindow)

	lines := strings.Split(window, "\n")
	for i := 0; i < len(lines) && i < positionalLines; i++ {
		line := strings.TrimSpace(lines[i])
		if hanLine.MatchString(line) && e.IsValidName(line) {
			return line, true
		}
	}

	for _, c := range hanRun.FindAllString(window, -1) {
		if e.IsValidName(c) {
			return c, true
		}
	}
	return "", false
}
