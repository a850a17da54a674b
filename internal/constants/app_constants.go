package constants

import "time"

// 评分相关默认值
const (
	// DefaultSkillWeight 技能匹配分数的默认权重
	DefaultSkillWeight = 0.50
	// DefaultSemanticWeight 语义相似度分数的默认权重
	DefaultSemanticWeight = 0.50
	// DefaultMaxFeatures 相似度词表的默认上限
	DefaultMaxFeatures = 1000
	// DefaultMaxEntitiesPerType 每类实体保留的默认上限
	DefaultMaxEntitiesPerType = 10
	// DefaultEvalConcurrency 流水线并发评估候选人的默认上限
	DefaultEvalConcurrency = 8
)

// 外部协作方默认值
const (
	// DefaultDecoderTimeout 文档解码的默认超时
	DefaultDecoderTimeout = 30 * time.Second
	// DefaultNERTimeout 实体识别服务的默认超时
	DefaultNERTimeout = 10 * time.Second
)

// 缓存相关
const (
	// EvaluationCacheKeyPrefix 批次结果在Redis中的键前缀
	EvaluationCacheKeyPrefix = "evaluation:"
	// DefaultResultCacheTTL 批次结果的默认缓存时长
	DefaultResultCacheTTL = 30 * time.Minute
)
