// Package contact 基于模式族从原始文本中提取联系方式。
// 注意必须在未规范化的原文上工作：邮箱和URL依赖大小写与标点。
package contact

import (
	"regexp"
	"strings"

	"resume-screener-go/internal/types"
)

var (
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// 电话模式族，候选结果取并集后去重。
	// 同一号码可能以多种格式变体同时命中，去重只消除完全相同的串。
	phoneRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\+91[-\s]?\d{10}`),              // 印度 +91 前缀
		regexp.MustCompile(`\+\d{1,3}[-\s]?\d{9,10}`),       // 通用国际格式
		regexp.MustCompile(`\b\d{10}\b`),                    // 裸10位号码
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-\s]?\d{4}`),  // (123) 456-7890
		regexp.MustCompile(`\b\d{3}[-\s]?\d{3}[-\s]?\d{4}\b`), // 123-456-7890
	}

	githubRegex   = regexp.MustCompile(`(?i)https?://(?:www\.)?github\.com/[\w\-]+`)
	linkedinRegex = regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/in/[\w\-]+`)
)

// Extract 提取邮箱、电话、GitHub 与 LinkedIn 链接。
// 四个字段永远是非 nil 的去重集合，没有命中不是错误。
func Extract(rawText string) types.ContactInfo {
	info := types.NewContactInfo()
	if rawText == "" {
		return info
	}

	info.Emails = dedupe(emailRegex.FindAllString(rawText, -1))

	var phones []string
	for _, re := range phoneRegexes {
		phones = append(phones, re.FindAllString(rawText, -1)...)
	}
	for i, p := range phones {
		phones[i] = strings.TrimSpace(p)
	}
	info.Phones = dropContained(dedupe(phones))

	info.GitHub = dedupe(githubRegex.FindAllString(rawText, -1))
	info.LinkedIn = dedupe(linkedinRegex.FindAllString(rawText, -1))

	return info
}

// dropContained 丢弃作为其他命中子串的号码。不同模式族会在同一个
// 号码上产生长短不一的变体（如 "+91-9876543210" 与其裸10位后缀），
// 只保留最长的那个。
func dropContained(phones []string) []string {
	result := make([]string, 0, len(phones))
	for i, p := range phones {
		contained := false
		for j, other := range phones {
			if i != j && len(other) > len(p) && strings.Contains(other, p) {
				contained = true
				break
			}
		}
		if !contained {
			result = append(result, p)
		}
	}
	return result
}

// dedupe 去重并保持首次出现顺序，nil 输入得到空切片
func dedupe(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
