package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-screener-go/internal/constants"
	"resume-screener-go/internal/types"

	"github.com/rs/zerolog"
)

// HTTPRecognizer 调用外部实体识别服务（POST 原始文本，返回四键JSON）。
// 服务端模型本身不在本系统范围内。
type HTTPRecognizer struct {
	endpoint   string
	client     *http.Client
	maxPerType int
	logger     zerolog.Logger
}

// HTTPRecognizerOption 识别器配置选项
type HTTPRecognizerOption func(*HTTPRecognizer)

// WithNERTimeout 设置请求超时
func WithNERTimeout(timeout time.Duration) HTTPRecognizerOption {
	return func(r *HTTPRecognizer) {
		r.client.Timeout = timeout
	}
}

// WithMaxEntitiesPerType 设置每类实体保留上限
func WithMaxEntitiesPerType(n int) HTTPRecognizerOption {
	return func(r *HTTPRecognizer) {
		if n > 0 {
			r.maxPerType = n
		}
	}
}

// WithNERLogger 设置日志
func WithNERLogger(logger zerolog.Logger) HTTPRecognizerOption {
	return func(r *HTTPRecognizer) {
		r.logger = logger
	}
}

// NewHTTPRecognizer 创建实体识别客户端
func NewHTTPRecognizer(endpoint string, options ...HTTPRecognizerOption) *HTTPRecognizer {
	r := &HTTPRecognizer{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: constants.DefaultNERTimeout},
		maxPerType: constants.DefaultMaxEntitiesPerType,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

var _ Recognizer = (*HTTPRecognizer)(nil)

// recognizeRequest 识别服务的请求体
type recognizeRequest struct {
	Text string `json:"text"`
}

// recognizeResponse 识别服务返回的原始实体束，键可能缺失
type recognizeResponse struct {
	Person []string `json:"PERSON"`
	Org    []string `json:"ORG"`
	GPE    []string `json:"GPE"`
	Date   []string `json:"DATE"`
}

// Recognize 识别文本中的实体。空文本直接返回空实体束；
// 服务返回结果统一规范化（补齐四键、去重保序、截断到上限）。
func (r *HTTPRecognizer) Recognize(ctx context.Context, text string) (types.EntityBundle, error) {
	bundle := types.NewEntityBundle()
	if text == "" {
		return bundle, nil
	}

	body, err := json.Marshal(recognizeRequest{Text: text})
	if err != nil {
		return bundle, fmt.Errorf("序列化识别请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return bundle, fmt.Errorf("创建识别请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return bundle, fmt.Errorf("调用实体识别服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return bundle, fmt.Errorf("实体识别服务返回状态码 %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return bundle, fmt.Errorf("读取识别响应失败: %w", err)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return bundle, fmt.Errorf("解析识别响应失败: %w", err)
	}

	bundle.Person = normalizeEntities(parsed.Person, r.maxPerType)
	bundle.Org = normalizeEntities(parsed.Org, r.maxPerType)
	bundle.GPE = normalizeEntities(parsed.GPE, r.maxPerType)
	bundle.Date = normalizeEntities(parsed.Date, r.maxPerType)

	r.logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("person", len(bundle.Person)).
		Int("org", len(bundle.Org)).
		Msg("实体识别完成")

	return bundle, nil
}

// normalizeEntities 去重保序、剔除空白项并截断到上限
func normalizeEntities(entities []string, limit int) []string {
	result := make([]string, 0, len(entities))
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		trimmed := strings.TrimSpace(e)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
		if len(result) == limit {
			break
		}
	}
	return result
}
