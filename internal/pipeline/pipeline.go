// Package pipeline 编排单个JD对一批候选简历的完整评估流程。
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"resume-screener-go/internal/constants"
	"resume-screener-go/internal/contact"
	"resume-screener-go/internal/ner"
	"resume-screener-go/internal/ranking"
	"resume-screener-go/internal/scoring"
	"resume-screener-go/internal/similarity"
	"resume-screener-go/internal/skills"
	"resume-screener-go/internal/textproc"
	"resume-screener-go/internal/types"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Evaluator 评估流水线。依赖全部在构建时注入且只读：
// 技能提取器、相似度打分器、实体识别器在批次内跨goroutine共享，
// 各候选人的评估互相独立，没有共享可变状态。
type Evaluator struct {
	extractor   *skills.Extractor
	scorer      similarity.Scorer
	recognizer  ner.Recognizer
	concurrency int
	logger      zerolog.Logger
}

// Option 流水线配置选项
type Option func(*Evaluator)

// WithConcurrency 设置并发评估候选人的上限
func WithConcurrency(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithRecognizer 注入实体识别器（默认 Noop）
func WithRecognizer(r ner.Recognizer) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.recognizer = r
		}
	}
}

// WithLogger 设置日志
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator 创建评估流水线
func NewEvaluator(extractor *skills.Extractor, scorer similarity.Scorer, options ...Option) *Evaluator {
	e := &Evaluator{
		extractor:   extractor,
		scorer:      scorer,
		recognizer:  &ner.NoopRecognizer{},
		concurrency: constants.DefaultEvalConcurrency,
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Evaluate 评估一批候选人并返回按最终分降序的结果。
// candidates 的键是批次内唯一的候选人标识，值是原始简历文本。
// 权重按传入值使用，由调用方负责解析默认值（HTTP层从配置取）；
// 两个权重都为0时每个候选人的最终分按合成规则为0。
//
// 批次要么返回完整的排序结果，要么返回单个明确的错误，
// 不存在部分成功状态。软信号（相似度、NER）失败就地退化为
// 0分/空实体束，不会中止批次。
func (e *Evaluator) Evaluate(ctx context.Context, jdText string, candidates map[string]string, skillWeight, semanticWeight float64) ([]types.CandidateEvaluation, error) {
	// JD只处理一次，派生值对整个批次只读
	jdNormalized := textproc.Normalize(jdText)
	jdSkills := e.extractor.Extract(jdNormalized)
	e.logger.Debug().Int("jd_skills", len(jdSkills)).Int("candidates", len(candidates)).Msg("开始批次评估")

	// 候选人ID排序后再分发，保证同分时的相对顺序跨运行一致
	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	evaluations := make([]types.CandidateEvaluation, len(ids))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			evaluation, err := e.evaluateOne(groupCtx, jdNormalized, jdSkills, id, candidates[id], skillWeight, semanticWeight)
			if err != nil {
				return err
			}
			evaluations[i] = evaluation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// 评分阶段本身的失败是致命的：不返回部分排序结果
		return nil, fmt.Errorf("批次评估失败: %w", err)
	}

	return ranking.Rank(evaluations), nil
}

// evaluateOne 评估单个候选人，除只读的JD派生值外不触碰任何共享状态
func (e *Evaluator) evaluateOne(ctx context.Context, jdNormalized string, jdSkills []string, id, rawText string, skillWeight, semanticWeight float64) (types.CandidateEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return types.CandidateEvaluation{}, err
	}

	normalized := textproc.Normalize(rawText)
	resumeSkills := e.extractor.Extract(normalized)
	match := skills.Match(jdSkills, resumeSkills)

	// 联系方式与实体在原文上提取，规范化会破坏邮箱和URL
	contactInfo := contact.Extract(rawText)

	entities, err := e.recognizer.Recognize(ctx, rawText)
	if err != nil {
		e.logger.Warn().Str("candidate", id).Err(err).Msg("实体识别失败，使用空实体束")
		entities = types.NewEntityBundle()
	}

	semanticScore, err := e.scorer.Score(ctx, jdNormalized, normalized)
	if err != nil {
		e.logger.Warn().Str("candidate", id).Err(err).Msg("相似度计算失败，语义分记0")
		semanticScore = 0
	}

	skillScore := scoring.SkillMatchScore(match.Matched, jdSkills)
	finalScore := scoring.ComposeFinalScore(skillScore, semanticScore, skillWeight, semanticWeight)

	return types.CandidateEvaluation{
		CandidateID:     id,
		Contact:         contactInfo,
		ExtractedSkills: resumeSkills,
		MatchedSkills:   match.Matched,
		MissingSkills:   match.Missing,
		SkillMatchScore: skillScore,
		SemanticScore:   semanticScore,
		FinalScore:      finalScore,
		Entities:        entities,
		// Rationale 由排序器统一填充
	}, nil
}
