package storage

import (
	"bytes"
	"context"
	"fmt"

	"resume-screener-go/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// ResumeArchive 可选地把原始上传的简历文件归档到对象存储，
// 路径为 <batch_id>/<filename>。归档失败是软失败，由调用方决定
// 只记日志继续。
type ResumeArchive struct {
	client *minio.Client
	bucket string
	logger zerolog.Logger
}

// NewResumeArchive 创建归档客户端并确保桶存在
func NewResumeArchive(ctx context.Context, cfg *config.MinIOConfig, logger zerolog.Logger) (*ResumeArchive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "resume-uploads"
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶 %s 失败: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建存储桶 %s 失败: %w", bucket, err)
		}
		logger.Info().Str("bucket", bucket).Msg("已创建归档存储桶")
	}

	return &ResumeArchive{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Archive 把一份原始上传文件写入对象存储
func (a *ResumeArchive) Archive(ctx context.Context, batchID, filename string, data []byte) error {
	objectName := fmt.Sprintf("%s/%s", batchID, filename)

	_, err := a.client.PutObject(ctx, a.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"},
	)
	if err != nil {
		return fmt.Errorf("归档 %s 失败: %w", objectName, err)
	}

	a.logger.Debug().Str("object", objectName).Int("bytes", len(data)).Msg("原始文件已归档")
	return nil
}
