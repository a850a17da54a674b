package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resume-screener-go/internal/config"
	"resume-screener-go/internal/decoder"
	"resume-screener-go/internal/pipeline"
	"resume-screener-go/internal/storage"
	"resume-screener-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// 跳过原因，属于对外契约的一部分
const (
	skipReasonNotPDF = "Not a PDF file"
	skipReasonEmpty  = "Empty or unreadable PDF"
)

// EvaluateHandler 处理简历批量评估请求
type EvaluateHandler struct {
	cfg       *config.Config
	evaluator *pipeline.Evaluator
	decoder   decoder.Decoder
	storage   *storage.Storage
	logger    zerolog.Logger
}

// NewEvaluateHandler 创建评估请求处理器
func NewEvaluateHandler(cfg *config.Config, evaluator *pipeline.Evaluator, dec decoder.Decoder, store *storage.Storage, logger zerolog.Logger) *EvaluateHandler {
	return &EvaluateHandler{
		cfg:       cfg,
		evaluator: evaluator,
		decoder:   dec,
		storage:   store,
		logger:    logger,
	}
}

// HandleEvaluate 处理评估请求。
// POST /api/v1/evaluate
// multipart表单：jd_text 为岗位描述文本，resumes 为一个或多个简历文件；
// 可选 skill_weight / semantic_weight 覆盖默认权重。
//
// 错误分层（见错误设计）：请求级拒绝返回400且不执行任何评分；
// 单文件问题记入 skipped_files 后继续；评分本身的失败整批返回500。
func (h *EvaluateHandler) HandleEvaluate(ctx context.Context, c *app.RequestContext) {
	start := time.Now()
	batchID := uuid.New().String()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "请求必须是multipart表单"})
		return
	}

	jdText := strings.TrimSpace(firstValue(form.Value, "jd_text"))
	if jdText == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "岗位描述文本不能为空"})
		return
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "至少需要上传一份简历文件"})
		return
	}

	skillWeight, semanticWeight := h.parseWeights(form.Value)

	h.logger.Info().
		Str("batch_id", batchID).
		Int("files", len(files)).
		Int("jd_chars", len(jdText)).
		Msg("收到评估请求")

	// 逐文件解码，问题文件记录原因后跳过，批次继续
	candidates := make(map[string]string, len(files))
	skipped := []types.SkippedFile{}

	for _, fileHeader := range files {
		filename := fileHeader.Filename
		if filename == "" {
			filename = "unknown"
		}

		if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
			skipped = append(skipped, types.SkippedFile{Filename: filename, Reason: skipReasonNotPDF})
			continue
		}

		data, err := readFile(fileHeader)
		if err != nil {
			skipped = append(skipped, types.SkippedFile{Filename: filename, Reason: fmt.Sprintf("Error processing PDF: %v", err)})
			continue
		}

		text, err := h.decoder.Decode(ctx, data, filename)
		if errors.Is(err, decoder.ErrEmptyDocument) {
			skipped = append(skipped, types.SkippedFile{Filename: filename, Reason: skipReasonEmpty})
			continue
		}
		if err != nil {
			skipped = append(skipped, types.SkippedFile{Filename: filename, Reason: fmt.Sprintf("Error processing PDF: %v", err)})
			continue
		}
		if strings.TrimSpace(text) == "" {
			skipped = append(skipped, types.SkippedFile{Filename: filename, Reason: skipReasonEmpty})
			continue
		}

		h.archive(ctx, batchID, filename, data)

		candidateID := strings.TrimSuffix(filename, filepath.Ext(filename))
		candidates[candidateID] = text
	}

	if len(candidates) == 0 {
		c.JSON(consts.StatusBadRequest, map[string]string{
			"error": "没有任何简历文件通过解码，全部被跳过",
		})
		return
	}

	evaluations, err := h.evaluator.Evaluate(ctx, jdText, candidates, skillWeight, semanticWeight)
	if err != nil {
		h.logger.Error().Str("batch_id", batchID).Err(err).Msg("批次评估失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "评估过程发生错误"})
		return
	}

	results := make([]types.CandidateResult, len(evaluations))
	for i := range evaluations {
		results[i] = evaluations[i].ToResult()
	}

	elapsed := time.Since(start)
	response := &types.EvaluationResponse{
		JobID:             batchID,
		TotalCandidates:   len(candidates),
		Results:           results,
		ProcessingTimeMS:  elapsed.Milliseconds(),
		ProcessingTimeSec: float64(elapsed.Milliseconds()) / 1000.0,
		SkippedFiles:      skipped,
	}

	h.cacheResult(ctx, batchID, response)

	h.logger.Info().
		Str("batch_id", batchID).
		Int("ranked", len(results)).
		Int("skipped", len(skipped)).
		Dur("elapsed", elapsed).
		Msg("评估完成")

	c.JSON(consts.StatusOK, response)
}

// HandleGetEvaluation 按批次ID重取最近的评估结果。
// GET /api/v1/evaluations/:batch_id
func (h *EvaluateHandler) HandleGetEvaluation(ctx context.Context, c *app.RequestContext) {
	batchID := c.Param("batch_id")
	if batchID == "" {
		c.JSON(consts.StatusBadRequest, map[string]string{"error": "batch_id 不能为空"})
		return
	}

	if h.storage == nil || h.storage.Results == nil {
		c.JSON(consts.StatusNotFound, map[string]string{"error": "结果缓存未启用"})
		return
	}

	response, err := h.storage.Results.Get(ctx, batchID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(consts.StatusNotFound, map[string]string{"error": "批次不存在或已过期"})
		return
	}
	if err != nil {
		h.logger.Error().Str("batch_id", batchID).Err(err).Msg("读取批次结果失败")
		c.JSON(consts.StatusInternalServerError, map[string]string{"error": "读取批次结果失败"})
		return
	}

	c.JSON(consts.StatusOK, response)
}

// parseWeights 解析可选的权重覆盖，未提供的项沿用配置中的默认权重
func (h *EvaluateHandler) parseWeights(values map[string][]string) (float64, float64) {
	skillWeight := h.cfg.Scoring.SkillWeight
	semanticWeight := h.cfg.Scoring.SemanticWeight

	if raw := firstValue(values, "skill_weight"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			skillWeight = v
		}
	}
	if raw := firstValue(values, "semantic_weight"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			semanticWeight = v
		}
	}
	return skillWeight, semanticWeight
}

// archive 归档原始上传，失败只记日志
func (h *EvaluateHandler) archive(ctx context.Context, batchID, filename string, data []byte) {
	if h.storage == nil || h.storage.Archive == nil {
		return
	}
	if err := h.storage.Archive.Archive(ctx, batchID, filename, data); err != nil {
		h.logger.Warn().Str("file", filename).Err(err).Msg("原始文件归档失败")
	}
}

// cacheResult 缓存批次结果，失败只记日志
func (h *EvaluateHandler) cacheResult(ctx context.Context, batchID string, response *types.EvaluationResponse) {
	if h.storage == nil || h.storage.Results == nil {
		return
	}
	if err := h.storage.Results.Put(ctx, batchID, response); err != nil {
		h.logger.Warn().Str("batch_id", batchID).Err(err).Msg("批次结果缓存失败")
	}
}

func firstValue(values map[string][]string, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
