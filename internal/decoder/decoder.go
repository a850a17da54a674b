// Package decoder 将上传的文档字节流解码为纯文本。
// 解码是外部协作方：核心评分流水线只消费解码后的文本。
package decoder

import (
	"context"
	"errors"
)

// ErrEmptyDocument 表示文档解析成功但没有可用文本。
// 与硬解码失败分开上报，调用方据此跳过该文件而不是中止批次。
var ErrEmptyDocument = errors.New("文档可解析，但未提取出文本")

// Decoder 文档解码器接口
type Decoder interface {
	// Decode 将字节流解码为纯文本。filename 仅用于日志和诊断。
	Decode(ctx context.Context, data []byte, filename string) (string, error)
}
