// Package scoring 实现技能匹配打分和加权总分合成。
package scoring

import "math"

// SkillMatchScore 计算技能匹配百分比（0-100，两位小数）。
// JD技能集为空时按约定返回0：比例无定义，且没有可供匹配的信号。
func SkillMatchScore(matched, jdSkills []string) float64 {
	if len(jdSkills) == 0 {
		return 0
	}
	return Round2(float64(len(matched)) / float64(len(jdSkills)) * 100)
}

// ComposeFinalScore 按权重合成最终分。权重先归一化到和为1；
// 两个权重都为0时返回0，避免除零。输出钳制到 [0,100]，
// 防御上游舍入误差把混合值推出区间。
func ComposeFinalScore(skillScore, semanticScore, skillWeight, semanticWeight float64) float64 {
	totalWeight := skillWeight + semanticWeight
	if totalWeight == 0 {
		return 0
	}

	final := (skillWeight/totalWeight)*skillScore + (semanticWeight/totalWeight)*semanticScore

	if final < 0 {
		final = 0
	} else if final > 100 {
		final = 100
	}
	return Round2(final)
}

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
