// Package ner 封装外部语言模型服务的实体识别协作方。
// 识别器是进程级显式状态：构建一次后注入流水线，
// 不走隐藏的全局单例，测试可以替换桩实现。
package ner

import (
	"context"

	"resume-screener-go/internal/types"
)

// Recognizer 实体识别接口。返回的实体束固定包含
// PERSON/ORG/GPE/DATE 四个键，每类限长、去重、保序，永不为nil。
type Recognizer interface {
	Recognize(ctx context.Context, text string) (types.EntityBundle, error)
}

// NoopRecognizer 永远返回空实体束，用于NER关闭场景和测试
type NoopRecognizer struct{}

var _ Recognizer = (*NoopRecognizer)(nil)

// Recognize 返回四键均为空的实体束
func (n *NoopRecognizer) Recognize(ctx context.Context, text string) (types.EntityBundle, error) {
	return types.NewEntityBundle(), nil
}
