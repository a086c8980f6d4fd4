package fields

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	male   = "男"
	female = "女"

	minAge = 18
	maxAge = 70

	// honorificWindow bounds where "先生"/"女士" count as being about the candidate.
	honorificWindow = 200
)

var (
	genderLabel   = regexp.MustCompile(label("性别") + colon + `([男女])`)
	genderEnglish = regexp.MustCompile(label("Gender") + colon + `(男|女|(?i:female|male))`)
	genderLoose   = regexp.MustCompile(`[：:]([男女])[ \t]*(?:[|｜/]|\n)`)

	maleHonorific   = regexp.MustCompile(`先生|\bMr\b`)
	femaleHonorific = regexp.MustCompile(`女士|\bMs\b|\bMiss\b`)

	ageLabel  = regexp.MustCompile(`(?:` + label("年龄") + `|\b` + label("Age") + `)` + colon + `([0-9]{1,2})(?:[^0-9]|$)`)
	ageSuffix = regexp.MustCompile(`(?:^|[^0-9])([0-9]{2})岁`)

	datePattern       = `[0-9]{4}[-/年][0-9]{1,2}[-/月][0-9]{1,2}日?`
	dateByUpdateLabel = regexp.MustCompile(label("更新时间") + colon + `(` + datePattern + `)`)
	dateByBirthLabel  = regexp.MustCompile(label("出生日期") + colon + `(` + datePattern + `)`)
	dateBare          = regexp.MustCompile(datePattern)
)

func genderByLabel(text string) (string, bool) {
	return firstMatch(genderLabel)(text)
}

func genderByEnglishLabel(text string) (string, bool) {
	v, ok := firstMatch(genderEnglish)(text)
	if !ok {
		return "", false
	}
	switch strings.ToLower(v) {
	case "male":
		return male, true
	case "female":
		return female, true
	}
	return v, true
}

// genderByLooseColon handles compact dumps such as "张三 | ：男 | 26岁".
func genderByLooseColon(text string) (string, bool) {
	return firstMatch(genderLoose)(text)
}

func genderByHonorific(text string) (string, bool) {
	top := head(text, honorificWindow)
	if maleHonorific.MatchString(top) {
		return male, true
	}
	if femaleHonorific.MatchString(top) {
		return female, true
	}
	return "", false
}

func ageByLabel(text string) (string, bool)  { return ageInRange(ageLabel, text) }
func ageBySuffix(text string) (string, bool) { return ageInRange(ageSuffix, text) }

// ageInRange returns the first captured age within [minAge, maxAge]; out-of-range
// matches are skipped rather than ending the search.
func ageInRange(re *regexp.Regexp, text string) (string, bool) {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n >= minAge && n <= maxAge {
			return strconv.Itoa(n), true
		}
	}
	return "", false
}
