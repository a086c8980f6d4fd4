package fields

import (
	"path/filepath"
	"regexp"
	"strings"
)

// filenamePattern matches the job-board export form "【岗位_城市 薪资】姓名 ...".
var filenamePattern = regexp.MustCompile(`【([^_】]+)_([^\s】]+)\s+([^】]+)】\s*(\S+)`)

const resumeSuffix = "的简历"

// FilenameInfo holds what a résumé filename says about the candidate. A nil field was not found.
type FilenameInfo struct {
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	Location *string `json:"location,omitempty"`
	Salary   *string `json:"salary,omitempty"`
}

// ParseFilename reads candidate details out of a résumé filename. Directory components
// are ignored.
func (e *Extractor) ParseFilename(filename string) FilenameInfo {
	stem := filepath.Base(filename)
	if ext := filepath.Ext(stem); strings.EqualFold(ext, ".pdf") {
		stem = strings.TrimSuffix(stem, ext)
	}
	stem = strings.TrimSuffix(strings.TrimSpace(stem), resumeSuffix)

	if m := filenamePattern.FindStringSubmatch(stem); m != nil {
		return FilenameInfo{
			Position: nonEmpty(m[1]),
			Location: nonEmpty(m[2]),
			Salary:   nonEmpty(m[3]),
			Name:     nonEmpty(m[4]),
		}
	}

	for _, c := range hanRun.FindAllString(stem, -1) {
		if e.IsValidName(c) {
			return FilenameInfo{Name: &c}
		}
	}
	return FilenameInfo{}
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
