package util

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags 去掉字符串中的 HTML 标签，只保留文本内容（不做实体反转义）
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Raw())
		}
	}
}
