package pipeline

import (
	"context"
	"errors"
	"testing"

	"resume-screener-go/internal/similarity"
	"resume-screener-go/internal/skills"
	"resume-screener-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvaluator(t *testing.T, options ...Option) *Evaluator {
	t.Helper()
	catalog := skills.NewCatalog([]string{
		"python", "tensorflow", "sql", "aws", "machine learning", "java", "docker",
	})
	extractor := skills.NewExtractor(catalog)
	return NewEvaluator(extractor, similarity.NewTFIDFScorer(), options...)
}

// TestEvaluateSingleCandidate JD四项技能命中三项，技能分75
func TestEvaluateSingleCandidate(t *testing.T) {
	evaluator := newTestEvaluator(t)
	jd := "Required: Python, TensorFlow, SQL, AWS"
	candidates := map[string]string{
		"resume1": "Experienced in Python, TensorFlow, SQL and Machine Learning.",
	}

	results, err := evaluator.Evaluate(context.Background(), jd, candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "resume1", r.CandidateID)
	assert.Equal(t, []string{"python", "sql", "tensorflow"}, r.MatchedSkills)
	assert.Equal(t, []string{"aws"}, r.MissingSkills)
	assert.Equal(t, 75.0, r.SkillMatchScore)
	assert.NotEmpty(t, r.Rationale)
	assert.GreaterOrEqual(t, r.FinalScore, 0.0)
	assert.LessOrEqual(t, r.FinalScore, 100.0)
}

// TestEvaluateRanksDescending 命中更多JD技能的候选人排在前面
func TestEvaluateRanksDescending(t *testing.T) {
	evaluator := newTestEvaluator(t)
	jd := "Looking for Python, SQL, AWS and Docker experience"
	candidates := map[string]string{
		"strong": "Python SQL AWS Docker expert with years of production experience",
		"weak":   "Java developer",
		"mid":    "Python and SQL analyst",
	}

	results, err := evaluator.Evaluate(context.Background(), jd, candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "strong", results[0].CandidateID)
	assert.Equal(t, "mid", results[1].CandidateID)
	assert.Equal(t, "weak", results[2].CandidateID)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].FinalScore, results[i].FinalScore)
	}
}

// TestEvaluateSynonymCanonicalization 简历里的 ML/k8s 等别名归一到规范名后参与匹配
func TestEvaluateSynonymCanonicalization(t *testing.T) {
	evaluator := newTestEvaluator(t)
	jd := "Need Machine Learning and Python"
	candidates := map[string]string{
		"resume1": "Strong ML background, fluent in Python",
	}

	results, err := evaluator.Evaluate(context.Background(), jd, candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"machine learning", "python"}, results[0].MatchedSkills)
	assert.Empty(t, results[0].MissingSkills)
	assert.Equal(t, 100.0, results[0].SkillMatchScore)
}

// TestEvaluateContactExtraction 联系方式在原文上提取，不受规范化影响
func TestEvaluateContactExtraction(t *testing.T) {
	evaluator := newTestEvaluator(t)
	candidates := map[string]string{
		"resume1": "Python developer. Email: Dev.User@Example.com GitHub: https://github.com/devuser",
	}

	results, err := evaluator.Evaluate(context.Background(), "Python", candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Dev.User@Example.com"}, results[0].Contact.Emails)
	assert.Equal(t, []string{"https://github.com/devuser"}, results[0].Contact.GitHub)
}

// failingScorer 总是失败的相似度打分器，用于验证软退化
type failingScorer struct{}

func (failingScorer) Score(ctx context.Context, textA, textB string) (float64, error) {
	return 0, errors.New("scorer unavailable")
}

// TestEvaluateScorerFailureDegrades 相似度失败退化为0分而不中止批次
func TestEvaluateScorerFailureDegrades(t *testing.T) {
	catalog := skills.NewCatalog([]string{"python", "sql"})
	evaluator := NewEvaluator(skills.NewExtractor(catalog), failingScorer{})
	candidates := map[string]string{
		"resume1": "Python and SQL developer",
	}

	results, err := evaluator.Evaluate(context.Background(), "Python SQL", candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].SemanticScore)
	assert.Equal(t, 100.0, results[0].SkillMatchScore)
	assert.Equal(t, 50.0, results[0].FinalScore)
}

// failingRecognizer 总是失败的实体识别器
type failingRecognizer struct{}

func (failingRecognizer) Recognize(ctx context.Context, text string) (types.EntityBundle, error) {
	return types.EntityBundle{}, errors.New("ner unavailable")
}

// TestEvaluateRecognizerFailureDegrades 实体识别失败退化为空实体束
func TestEvaluateRecognizerFailureDegrades(t *testing.T) {
	evaluator := newTestEvaluator(t, WithRecognizer(failingRecognizer{}))
	candidates := map[string]string{
		"resume1": "Python developer at Acme Corp",
	}

	results, err := evaluator.Evaluate(context.Background(), "Python", candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Entities.Person)
	assert.Empty(t, results[0].Entities.Person)
	assert.Empty(t, results[0].Entities.Org)
}

// TestEvaluateCustomWeights 权重按传入值直接参与合成
func TestEvaluateCustomWeights(t *testing.T) {
	catalog := skills.NewCatalog([]string{"python"})
	evaluator := NewEvaluator(skills.NewExtractor(catalog), failingScorer{})
	candidates := map[string]string{
		"resume1": "Python developer",
	}

	// 只看技能：语义分为0也不拉低最终分
	results, err := evaluator.Evaluate(context.Background(), "Python", candidates, 1, 0)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].FinalScore)
}

// TestEvaluateZeroWeightsYieldZeroFinal 显式传入双零权重时按合成规则
// 每个最终分为0，不回退到任何默认权重；组成分数照常计算。
func TestEvaluateZeroWeightsYieldZeroFinal(t *testing.T) {
	evaluator := newTestEvaluator(t)
	candidates := map[string]string{
		"resume1": "Python and SQL developer",
	}

	results, err := evaluator.Evaluate(context.Background(), "Python SQL", candidates, 0, 0)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].FinalScore)
	assert.Equal(t, 100.0, results[0].SkillMatchScore)
	assert.Greater(t, results[0].SemanticScore, 0.0)
}

// TestEvaluateEmptyBatch 空批次得到空结果而非错误
func TestEvaluateEmptyBatch(t *testing.T) {
	evaluator := newTestEvaluator(t)

	results, err := evaluator.Evaluate(context.Background(), "Python", map[string]string{}, 0.5, 0.5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestEvaluateCancelledContext 已取消的上下文使整批失败
func TestEvaluateCancelledContext(t *testing.T) {
	evaluator := newTestEvaluator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := evaluator.Evaluate(ctx, "Python", map[string]string{"resume1": "Python"}, 0.5, 0.5)

	assert.Error(t, err)
}

// TestEvaluateManyCandidatesConcurrent 并发上限下批量评估仍然完整且有序
func TestEvaluateManyCandidatesConcurrent(t *testing.T) {
	evaluator := newTestEvaluator(t, WithConcurrency(4))
	candidates := make(map[string]string, 20)
	for i := 0; i < 20; i++ {
		text := "Java developer"
		if i%2 == 0 {
			text = "Python SQL AWS Docker developer"
		}
		candidates[string(rune('a'+i))] = text
	}

	results, err := evaluator.Evaluate(context.Background(), "Python SQL AWS Docker", candidates, 0.5, 0.5)

	require.NoError(t, err)
	require.Len(t, results, 20)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].FinalScore, results[i].FinalScore)
	}
}
