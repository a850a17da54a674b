// Package ranking 实现候选人排序与规则式匹配理由生成。
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"resume-screener-go/internal/types"
)

// 理由子句3最多列出的缺失技能数
const maxMissingInRationale = 3

// Rationale 按固定规则表生成匹配理由，子句依次拼接：
//  1. 技能分档位（Strong/Good/Moderate/Weak match）+ 取整后的技能分；
//  2. 语义相关度档位（High/Moderate/Low semantic relevance）；
//  3. 仅当缺失技能非空且技能分低于80时，列出前3个缺失技能，
//     超出部分以"(+N more)"收尾。技能分达到80后即使仍有缺失
//     也不输出子句3，这是既有行为，保持不变。
func Rationale(skillScore float64, matched, missing []string, semanticScore float64) string {
	var matchLevel string
	switch {
	case skillScore >= 80:
		matchLevel = "Strong match"
	case skillScore >= 60:
		matchLevel = "Good match"
	case skillScore >= 40:
		matchLevel = "Moderate match"
	default:
		matchLevel = "Weak match"
	}

	parts := []string{fmt.Sprintf("%s: %.0f%% skills matched.", matchLevel, skillScore)}

	switch {
	case semanticScore >= 70:
		parts = append(parts, "High semantic relevance.")
	case semanticScore >= 50:
		parts = append(parts, "Moderate semantic relevance.")
	default:
		parts = append(parts, "Low semantic relevance.")
	}

	if len(missing) > 0 && skillScore < 80 {
		top := missing
		if len(top) > maxMissingInRationale {
			top = top[:maxMissingInRationale]
		}
		clause := strings.Join(top, ", ")
		if extra := len(missing) - maxMissingInRationale; extra > 0 {
			clause += fmt.Sprintf(" (+%d more)", extra)
		}
		parts = append(parts, fmt.Sprintf("Missing: %s.", clause))
	}

	return strings.Join(parts, " ")
}

// Rank 为每个候选人生成理由后按最终分降序排序。
// 必须用稳定排序：同分候选人保持输入相对顺序，跨运行结果一致。
func Rank(evaluations []types.CandidateEvaluation) []types.CandidateEvaluation {
	for i := range evaluations {
		e := &evaluations[i]
		e.Rationale = Rationale(e.SkillMatchScore, e.MatchedSkills, e.MissingSkills, e.SemanticScore)
	}

	sort.SliceStable(evaluations, func(i, j int) bool {
		return evaluations[i].FinalScore > evaluations[j].FinalScore
	})

	return evaluations
}
