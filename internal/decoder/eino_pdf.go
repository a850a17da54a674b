package decoder

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"
)

// EinoPDFDecoder 使用 Eino PDF Parser 在本地提取文本，无外部服务依赖
type EinoPDFDecoder struct {
	parser  *pdf.PDFParser
	timeout time.Duration
	logger  zerolog.Logger
}

// EinoPDFOption 解码器配置选项
type EinoPDFOption func(*EinoPDFDecoder)

// WithEinoTimeout 设置单文档解码超时
func WithEinoTimeout(timeout time.Duration) EinoPDFOption {
	return func(d *EinoPDFDecoder) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithEinoLogger 设置日志
func WithEinoLogger(logger zerolog.Logger) EinoPDFOption {
	return func(d *EinoPDFDecoder) {
		d.logger = logger
	}
}

// NewEinoPDFDecoder 初始化本地PDF解码器。
// ToPages 置为 false：需要整份文档的连续文本，而不是按页切分。
func NewEinoPDFDecoder(ctx context.Context, options ...EinoPDFOption) (*EinoPDFDecoder, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false,
	})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}

	d := &EinoPDFDecoder{
		parser:  p,
		timeout: 30 * time.Second,
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d, nil
}

var _ Decoder = (*EinoPDFDecoder)(nil)

// Decode 从PDF字节流提取纯文本。解析失败返回硬错误；
// 解析成功但文本为空返回 ErrEmptyDocument。
func (d *EinoPDFDecoder) Decode(ctx context.Context, data []byte, filename string) (string, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	docs, err := d.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(filename),
	)
	if err != nil {
		d.logger.Debug().Str("file", filename).Err(err).Msg("PDF解析失败")
		return "", fmt.Errorf("解析PDF %s 失败: %w", filename, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	var builder strings.Builder
	for i, doc := range docs {
		builder.WriteString(doc.Content)
		if i < len(docs)-1 {
			builder.WriteString("\n")
		}
	}
	text := builder.String()

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	d.logger.Debug().
		Str("file", filename).
		Int("chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("PDF解码完成")

	return text, nil
}
