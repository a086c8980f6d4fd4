package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGender(t *testing.T) {
	e := New()
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"label", "性别：男", "男", true},
		{"spaced label", "性 别 : 女\n", "女", true},
		{"english female", "Gender: Female", "女", true},
		{"english male lower", "gender：male", "男", true},
		{"english han value", "Gender: 女", "女", true},
		{"compact dump", "张三 ：男 | 26岁 | 本科", "男", true},
		{"compact newline", "张三：女\n成都", "女", true},
		{"honorific", "王先生 您好", "男", true},
		{"english honorific", "Dear Ms Li", "女", true},
		{"label beats honorific", "李先生\n性别：女", "女", true},
		{"none", "工作经历\n2019-2023 某公司", "", false},
		{"empty", "", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := e.ExtractGender(c.text)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestGenderByHonorific_Window(t *testing.T) {
	text := ""
	for i := 0; i < 250; i++ {
		text += "x"
	}
	_, ok := genderByHonorific(text + "先生")
	assert.False(t, ok)
}

func TestExtractAge(t *testing.T) {
	e := New()
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"label", "年龄：26", "26", true},
		{"out of range", "年龄：95", "", false},
		{"english label", "Age: 31\n", "31", true},
		{"suffix", "男 | 28岁 | 本科", "28", true},
		{"out of range label falls to suffix", "年龄：12\n今年35岁", "35", true},
		{"skips out of range suffix", "工作10年 从业99岁 现年40岁", "40", true},
		{"three digits", "年龄：123", "", false},
		{"boundaries", "年龄：18", "18", true},
		{"upper boundary", "70岁", "70", true},
		{"no digits", "年龄：保密", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := e.ExtractAge(c.text)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestExtractDate(t *testing.T) {
	e := New()
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"update label wins", "出生日期：1995-03-12\n更新时间：2024/05/20", "2024/05/20", true},
		{"birth label", "2019-01-01 入职\n出生日期：1995年3月12日", "1995年3月12日", true},
		{"bare", "2018/9/1 - 2022/6/30 本科", "2018/9/1", true},
		{"verbatim mixed separators", "2021年07-01", "2021年07-01", true},
		{"year month only", "2021年07月", "", false},
		{"empty", "", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := e.ExtractDate(c.text)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}
