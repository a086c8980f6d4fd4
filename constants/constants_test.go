package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExtToFormat(t *testing.T) {
	for _, ext := range []string{".pdf", ".PDF", "pdf", ".Pdf"} {
		assert.Equal(t, PDF, MapExtToFormat(ext), ext)
	}
	for _, ext := range []string{".docx", "", ".pdf.bak"} {
		assert.Empty(t, MapExtToFormat(ext), ext)
	}
}

func TestCitySet(t *testing.T) {
	assert.Len(t, CityNames(), 48)
	assert.True(t, IsCity("北京"))
	assert.True(t, IsCity("成都"))
	assert.False(t, IsCity("北京市"), "exact match only")
	assert.False(t, IsCity(""))

	names := CityNames()
	names[0] = "mutated"
	assert.NotContains(t, CityNames(), "mutated", "callers get a copy")
}

func TestTitleWords(t *testing.T) {
	assert.True(t, IsTitleWord("简历"))
	assert.True(t, IsTitleWord("求职者"))
	assert.False(t, IsTitleWord("张三"))
}

func TestColumns(t *testing.T) {
	assert.Len(t, Columns, 11)
	assert.Equal(t, "序号", Columns[0])
	assert.Equal(t, "文件名", Columns[len(Columns)-1])
	assert.NotEqual(t, ResultSheet, FailureSheet)
}
