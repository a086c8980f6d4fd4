// Package fields extracts candidate fields (name, phone, email, gender, age, date,
// position, location, salary) from résumé text and parses structured résumé filenames.
//
// Every extractor is a pure function of its input: the same text always yields the same
// value, and absence of a match is reported as ("", false), never as an error.
package fields

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

// DefaultNameWindow is how many leading runes the positional name strategy looks at.
const DefaultNameWindow = 100

// rulesVersion is part of every fingerprint; bump it when an extraction rule changes.
const rulesVersion = 1

// Extractor holds the lookup sets shared by the field extractors. It is immutable once
// built and safe for concurrent use.
type Extractor struct {
	cities     map[string]struct{}
	titleWords map[string]struct{}
	nameWindow int

	fingerprint string

	name     Strategy
	phone    Strategy
	email    Strategy
	gender   Strategy
	age      Strategy
	date     Strategy
	position Strategy
	location Strategy
	salary   Strategy
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithNameWindow sets the rune window used by the positional name strategy.
func WithNameWindow(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.nameWindow = n
		}
	}
}

// WithExtraCities adds city names on top of the built-in set.
func WithExtraCities(names ...string) Option {
	return func(e *Extractor) {
		for _, n := range names {
			if n != "" {
				e.cities[n] = struct{}{}
			}
		}
	}
}

// WithExtraTitleWords adds words that must never be taken for a name.
func WithExtraTitleWords(words ...string) Option {
	return func(e *Extractor) {
		for _, w := range words {
			if w != "" {
				e.titleWords[w] = struct{}{}
			}
		}
	}
}

// New builds an Extractor with the built-in city and title-word sets.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		cities:     toSet(constants.CityNames()),
		titleWords: toSet(constants.TitleWordList()),
		nameWindow: DefaultNameWindow,
	}
	for _, o := range opts {
		o(e)
	}

	e.name = FirstOf(e.nameByKeyword, e.nameByPosition)
	e.phone = FirstOf(phoneByLooseSegment, phoneByStrictRun)
	e.email = longestEmail
	e.gender = FirstOf(genderByLabel, genderByEnglishLabel, genderByLooseColon, genderByHonorific)
	e.age = FirstOf(ageByLabel, ageBySuffix)
	e.date = FirstOf(firstMatch(dateByUpdateLabel), firstMatch(dateByBirthLabel), firstMatch(dateBare))
	e.position = e.positionByLabel
	e.location = FirstOf(e.locationByLabel, e.locationByIntent)
	e.salary = salaryByLabel
	e.fingerprint = e.computeFingerprint()
	return e
}

// Fingerprint identifies the rules and lookup sets this Extractor applies. Two extractors
// with the same fingerprint return the same fields for the same text.
func (e *Extractor) Fingerprint() string { return e.fingerprint }

func (e *Extractor) computeFingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "rules=%d\nwindow=%d\n", rulesVersion, e.nameWindow)
	for _, c := range sortedKeys(e.cities) {
		fmt.Fprintf(h, "city=%s\n", c)
	}
	for _, w := range sortedKeys(e.titleWords) {
		fmt.Fprintf(h, "title=%s\n", w)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ExtractName returns the candidate's name.
func (e *Extractor) ExtractName(text string) (string, bool) { return e.name(text) }

// ExtractPhone returns an 11-digit mainland mobile number with separators removed.
func (e *Extractor) ExtractPhone(text string) (string, bool) { return e.phone(text) }

// ExtractEmail returns the longest e-mail address in text.
func (e *Extractor) ExtractEmail(text string) (string, bool) { return e.email(text) }

// ExtractGender returns "男" or "女".
func (e *Extractor) ExtractGender(text string) (string, bool) { return e.gender(text) }

// ExtractAge returns an age in [18, 70] as a decimal string.
func (e *Extractor) ExtractAge(text string) (string, bool) { return e.age(text) }

// ExtractDate returns the first update date, birth date or bare date, verbatim.
func (e *Extractor) ExtractDate(text string) (string, bool) { return e.date(text) }

// ExtractPosition returns the applied-for position.
func (e *Extractor) ExtractPosition(text string) (string, bool) { return e.position(text) }

// ExtractLocation returns the expected work city.
func (e *Extractor) ExtractLocation(text string) (string, bool) { return e.location(text) }

// ExtractSalary returns the expected salary range, with "k" upper-cased.
func (e *Extractor) ExtractSalary(text string) (string, bool) { return e.salary(text) }

// Fields are the values extracted from one résumé's text. A nil field was not found.
type Fields struct {
	Name     *string `json:"name,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Age      *string `json:"age,omitempty"`
	Date     *string `json:"date,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
	Location *string `json:"location,omitempty"`
	Salary   *string `json:"salary,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ExtractAll runs every field extractor over text.
func (e *Extractor) ExtractAll(text string) Fields {
	return Fields{
		Name:     ptr(e.ExtractName(text)),
		Gender:   ptr(e.ExtractGender(text)),
		Age:      ptr(e.ExtractAge(text)),
		Date:     ptr(e.ExtractDate(text)),
		Phone:    ptr(e.ExtractPhone(text)),
		Position: ptr(e.ExtractPosition(text)),
		Location: ptr(e.ExtractLocation(text)),
		Salary:   ptr(e.ExtractSalary(text)),
		Email:    ptr(e.ExtractEmail(text)),
	}
}

// Found counts the non-nil fields.
func (f Fields) Found() int {
	n := 0
	for _, v := range []*string{f.Name, f.Gender, f.Age, f.Date, f.Phone, f.Position, f.Location, f.Salary, f.Email} {
		if v != nil {
			n++
		}
	}
	return n
}

func (e *Extractor) isCity(s string) bool {
	_, ok := e.cities[s]
	return ok
}

func (e *Extractor) isTitleWord(s string) bool {
	_, ok := e.titleWords[s]
	return ok
}

func ptr(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}

func toSet(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}
