// Package textproc 提供简历与JD文本的规范化处理
package textproc

import (
	"regexp"
	"strings"
)

var (
	// 换行、回车、制表符折叠为单个空格
	lineBreaksRegex = regexp.MustCompile(`[\n\r\t]+`)
	// 连续空白折叠为单个空格
	spacesRegex = regexp.MustCompile(`\s+`)
	// 除字母数字、空格和 + # . ' 之外的字符一律替换为空格
	// 保留 c++、c#、.net、don't 这类词形
	charsetRegex = regexp.MustCompile(`[^a-z0-9\s+#.']`)
)

// Normalize 将原始文本规范化为用于词法匹配的形态：
// 小写、折叠空白、剔除噪声字符、去掉首尾空白。
// 纯函数且幂等：Normalize(Normalize(x)) == Normalize(x)；空输入返回空串。
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := strings.ToLower(text)
	t = lineBreaksRegex.ReplaceAllString(t, " ")
	t = spacesRegex.ReplaceAllString(t, " ")
	t = charsetRegex.ReplaceAllString(t, " ")
	t = spacesRegex.ReplaceAllString(t, " ")

	return strings.TrimSpace(t)
}
