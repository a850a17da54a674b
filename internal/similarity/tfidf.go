package similarity

import (
	"context"
	"math"
	"sort"
	"strings"

	"resume-screener-go/internal/constants"

	"github.com/rs/zerolog"
)

// TFIDFScorer 基于词袋n-gram加权和余弦距离的默认相似度原语：
// 在且仅在被比较的两篇文档上建立 unigram+bigram 联合词表，
// 剔除停用词，按语料词频截断词表规模，tf-idf 加权后取余弦夹角，
// 再缩放到 [0,100] 并保留两位小数。
type TFIDFScorer struct {
	maxFeatures int
	logger      zerolog.Logger
}

// TFIDFOption 打分器配置选项
type TFIDFOption func(*TFIDFScorer)

// WithMaxFeatures 设置词表规模上限（默认1000），用于控制开销
func WithMaxFeatures(n int) TFIDFOption {
	return func(s *TFIDFScorer) {
		if n > 0 {
			s.maxFeatures = n
		}
	}
}

// WithTFIDFLogger 设置日志
func WithTFIDFLogger(logger zerolog.Logger) TFIDFOption {
	return func(s *TFIDFScorer) {
		s.logger = logger
	}
}

// NewTFIDFScorer 创建默认配置的打分器
func NewTFIDFScorer(opts ...TFIDFOption) *TFIDFScorer {
	s := &TFIDFScorer{
		maxFeatures: constants.DefaultMaxFeatures,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Scorer = (*TFIDFScorer)(nil)

// Score 计算两段规范化文本的相似度。
// 任一输入为空立即返回0；内部任何异常（如停用词过滤后词表为空）
// 一律退化为0——相似度永远不能中止流水线。
func (s *TFIDFScorer) Score(ctx context.Context, textA, textB string) (score float64, err error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return 0, nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn().Interface("panic", r).Msg("相似度计算异常，退化为0分")
			score, err = 0, nil
		}
	}()

	termsA := ngramTerms(tokenize(textA))
	termsB := ngramTerms(tokenize(textB))
	if len(termsA) == 0 || len(termsB) == 0 {
		return 0, nil
	}

	countsA := termCounts(termsA)
	countsB := termCounts(termsB)
	vocabulary := s.buildVocabulary(countsA, countsB)
	if len(vocabulary) == 0 {
		return 0, nil
	}

	vecA := tfidfVector(vocabulary, countsA, countsB)
	vecB := tfidfVector(vocabulary, countsB, countsA)

	cos := cosine(vecA, vecB)
	result := cos * 100
	if result < 0 {
		result = 0
	} else if result > 100 {
		result = 100
	}
	return round2(result), nil
}

// tokenize 切分规范化文本并剔除停用词
func tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if isStopword(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// ngramTerms 在停用词过滤后的token序列上生成 unigram + bigram 词项
func ngramTerms(tokens []string) []string {
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

// buildVocabulary 取两篇文档的词项并集；超过上限时按语料总频次
// 降序截断（同频按字典序，保证确定性）。
func (s *TFIDFScorer) buildVocabulary(countsA, countsB map[string]int) []string {
	total := make(map[string]int, len(countsA)+len(countsB))
	for t, c := range countsA {
		total[t] += c
	}
	for t, c := range countsB {
		total[t] += c
	}

	vocabulary := make([]string, 0, len(total))
	for t := range total {
		vocabulary = append(vocabulary, t)
	}
	sort.Slice(vocabulary, func(i, j int) bool {
		if total[vocabulary[i]] != total[vocabulary[j]] {
			return total[vocabulary[i]] > total[vocabulary[j]]
		}
		return vocabulary[i] < vocabulary[j]
	})
	if len(vocabulary) > s.maxFeatures {
		vocabulary = vocabulary[:s.maxFeatures]
	}
	return vocabulary
}

// tfidfVector 计算一篇文档在给定词表上的 l2 归一化 tf-idf 向量。
// idf 在恰好两篇文档的语料上做平滑：ln((1+n)/(1+df)) + 1，n=2。
func tfidfVector(vocabulary []string, doc, other map[string]int) []float64 {
	vec := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		tf := float64(doc[term])
		if tf == 0 {
			continue
		}
		df := 1.0
		if other[term] > 0 {
			df = 2.0
		}
		idf := math.Log(3.0/(1.0+df)) + 1.0
		vec[i] = tf * idf
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// cosine 两个已归一化向量的点积
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
