package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"张三", true},
		{" 李志华 ", true},
		{"欧阳娜娜", true},
		{"王", false},
		{"欧阳娜娜娜", false},
		{"张3", false},
		{"Tom", false},
		{"张San", false},
		{"张·三", false},
		{"简历", false},
		{"工作经历", false},
		{"手机号码", false},
		{"姓名", false},
		{"名字", false},
		{"", false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, IsValidName(c.in))
		})
	}
}

func TestExtractName(t *testing.T) {
	e := New()
	cases := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"label", "个人简历\n姓名：张三\n性别：男", "张三", true},
		{"spaced label", "姓 名: 李四\n电话：13812345678", "李四", true},
		{"english label", "name: 王五\n", "王五", true},
		{"invalid label value falls through", "姓名：简历\n赵六\n", "赵六", true},
		{"own line", "简历\n\n陈小明\n电话：13812345678", "陈小明", true},
		{"window run skips title words", "求职者 刘洋 13812345678", "刘洋", true},
		{"label run is never the name", "姓名：张三|男", "张三", true},
		{"latin value after label", "姓名：Tom\n电话：13812345678", "", false},
		{"title words only", "个人简历\n工作经历\n教育背景", "", false},
		{"empty", "", "", false},
		{"latin only", "John Smith\nSoftware Engineer", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := e.ExtractName(c.text)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestExtractName_WindowLimit(t *testing.T) {
	padding := ""
	for i := 0; i < 30; i++ {
		padding += "abc "
	}
	text := padding + "张三"

	_, ok := New().ExtractName(text)
	assert.False(t, ok)

	got, ok := New(WithNameWindow(200)).ExtractName(text)
	assert.True(t, ok)
	assert.Equal(t, "张三", got)
}

func TestExtractName_ExtraTitleWords(t *testing.T) {
	e := New(WithExtraTitleWords("运维"))
	got, ok := e.ExtractName("运维\n张伟\n")
	assert.True(t, ok)
	assert.Equal(t, "张伟", got)
}
