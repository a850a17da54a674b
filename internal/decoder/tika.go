package decoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TikaDecoder 通过 Apache Tika 服务器做远程文档解码。
// 比本地解码器支持更多格式，但要求部署独立的Tika进程。
type TikaDecoder struct {
	serverURL string
	client    *http.Client
	logger    zerolog.Logger
}

// TikaOption 解码器配置选项
type TikaOption func(*TikaDecoder)

// WithTikaTimeout 设置HTTP超时
func WithTikaTimeout(timeout time.Duration) TikaOption {
	return func(d *TikaDecoder) {
		if timeout > 0 {
			d.client.Timeout = timeout
		}
	}
}

// WithTikaLogger 设置日志
func WithTikaLogger(logger zerolog.Logger) TikaOption {
	return func(d *TikaDecoder) {
		d.logger = logger
	}
}

// NewTikaDecoder 创建Tika解码客户端，serverURL 形如 http://localhost:9998
func NewTikaDecoder(serverURL string, options ...TikaOption) *TikaDecoder {
	d := &TikaDecoder{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

var _ Decoder = (*TikaDecoder)(nil)

// Decode 将文档字节流发给Tika服务器换取纯文本
func (d *TikaDecoder) Decode(ctx context.Context, data []byte, filename string) (string, error) {
	start := time.Now()

	url := fmt.Sprintf("%s/tika", d.serverURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("创建Tika请求失败: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	if filename != "" {
		req.Header.Set("X-Tika-Resource-Name", filename)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tika服务器返回状态码 %d (文件 %s)", resp.StatusCode, filename)
	}

	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取Tika响应失败: %w", err)
	}

	text := string(textBytes)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	d.logger.Debug().
		Str("file", filename).
		Int("chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("Tika解码完成")

	return text, nil
}
