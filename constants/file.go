package constants

import "strings"

// PDF is the only source format résumés are read from.
const PDF = "PDF"

// AllowedExtensions holds the extensions picked up during directory ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// MaxPages is how many leading pages of a résumé are read for text.
const MaxPages = 3

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the source format for an extension, or "" when unsupported.
func MapExtToFormat(ext string) string {
	if _, ok := AllowedExtensions[NormalizeExt(ext)]; ok {
		return PDF
	}
	return ""
}
