package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"full-width punctuation", "电话：１３８１２３４５６７８｜邮箱", "电话:13812345678|邮箱"},
		{"ideographic space", "张　三", "张 三"},
		{"crlf and tabs", "a\r\nb\t\tc\rd", "a\nb c\nd"},
		{"blank runs", "a\n\n\n\n  \n\nb", "a\n\nb"},
		{"rule lines", "教育背景\n-----------\n四川大学", "教育背景\n\n四川大学"},
		{"form feed", "p1\fp2", "p1\np2"},
		{"trailing spaces", "  姓名:张三   \n", "姓名:张三"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Normalize(c.in))
		})
	}
}
