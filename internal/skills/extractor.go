package skills

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor 在规范化文本中识别词表技能。
// 整个扩展词表编译为单个RE2交替式（一次自动机扫描），
// 而不是逐技能的regex扫描——大词表下这是热路径。
type Extractor struct {
	catalog *Catalog
	matcher *regexp.Regexp
}

// MatchResult 技能比对结果。不变式：
// Matched ∩ Missing = ∅，Matched ∪ Missing = JD技能集。
type MatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// NewExtractor 基于词表构建提取器。空词表得到永远返回空结果的提取器。
func NewExtractor(catalog *Catalog) *Extractor {
	e := &Extractor{catalog: catalog}

	surfaces := catalog.Surfaces()
	if len(surfaces) == 0 {
		return e
	}

	quoted := make([]string, len(surfaces))
	for i, s := range surfaces {
		quoted[i] = regexp.QuoteMeta(s)
	}
	// 词边界不用\b：c++、c#、.net 这类符号结尾的词形在\b语义下会漏配，
	// 改为命中后在代码里校验相邻字符（见 isBoundary）。
	e.matcher = regexp.MustCompile("(?:" + strings.Join(quoted, "|") + ")")
	return e
}

// isWordByte 判断字符是否可能是技能token的内部字符
func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// isBoundary 校验 text[start:end) 的命中是否落在词边界上：
// 相邻字符为文本边缘或非字母数字即有效。
// 这样 "java" 不会命中 "javascript" 内部，而 "c++" 后跟空格正常命中。
func isBoundary(text string, start, end int) bool {
	if start > 0 && isWordByte(text[start-1]) {
		return false
	}
	if end < len(text) && isWordByte(text[end]) {
		return false
	}
	return true
}

// Extract 返回文本中出现的全部技能的归一名，排序去重。
// 输入必须是 textproc.Normalize 的输出。
func (e *Extractor) Extract(normalizedText string) []string {
	if e.matcher == nil || normalizedText == "" {
		return []string{}
	}

	found := make(map[string]struct{})
	// 手动推进扫描位置：每次命中（无论边界校验是否通过）只前移一个
	// 字符再继续，长词形内部嵌套的独立词形（如 node.js 里的 js）
	// 同样会被测到。结果是集合，重复命中无害。
	pos := 0
	for pos < len(normalizedText) {
		loc := e.matcher.FindStringIndex(normalizedText[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if isBoundary(normalizedText, start, end) {
			if canonical, ok := e.catalog.Canonical(normalizedText[start:end]); ok {
				found[canonical] = struct{}{}
			}
		}
		pos = start + 1
	}

	result := make([]string, 0, len(found))
	for s := range found {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Match 比对JD技能集与简历技能集：
// Matched 为交集，Missing 为JD独有，两者均排序返回。
func Match(jdSkills, resumeSkills []string) MatchResult {
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[s] = struct{}{}
	}

	result := MatchResult{Matched: []string{}, Missing: []string{}}
	seen := make(map[string]struct{}, len(jdSkills))
	for _, s := range jdSkills {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := resumeSet[s]; ok {
			result.Matched = append(result.Matched, s)
		} else {
			result.Missing = append(result.Missing, s)
		}
	}
	sort.Strings(result.Matched)
	sort.Strings(result.Missing)
	return result
}
