// Package similarity 计算两段规范化文本的语义接近度（0-100分）。
package similarity

import "context"

// Scorer 语义相似度打分器接口。
// 约定：任一输入为空直接返回0（定义好的短路，不是错误路径）；
// 分数在 [0,100] 内并保留两位小数。相似度是软信号，
// 实现内部的失败应尽量自行退化为0而不是让批次失败。
type Scorer interface {
	Score(ctx context.Context, textA, textB string) (float64, error)
}
