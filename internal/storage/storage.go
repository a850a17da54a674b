// Package storage 聚合可选的外部存储适配器。
// 两个适配器都不是评估流水线的必需依赖：初始化失败只降级，不中止启动。
package storage

import (
	"context"

	"resume-screener-go/internal/config"

	"github.com/rs/zerolog"
)

// Storage 存储管理器。未启用或初始化失败的适配器为 nil，
// 调用方使用前需判空。
type Storage struct {
	// 批次结果缓存
	Results *ResultCache

	// 原始上传归档
	Archive *ResumeArchive
}

// NewStorage 按配置初始化启用的存储适配器，容忍单个适配器失败
func NewStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *Storage {
	s := &Storage{}

	if cfg.Redis.Enabled {
		results, err := NewResultCache(ctx, &cfg.Redis, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("结果缓存初始化失败，批次重取接口不可用")
		} else {
			s.Results = results
			logger.Info().Str("address", cfg.Redis.Address).Msg("结果缓存初始化成功")
		}
	}

	if cfg.MinIO.Enabled {
		archive, err := NewResumeArchive(ctx, &cfg.MinIO, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("上传归档初始化失败，原始文件不归档")
		} else {
			s.Archive = archive
			logger.Info().Str("endpoint", cfg.MinIO.Endpoint).Msg("上传归档初始化成功")
		}
	}

	return s
}

// Close 释放持有的连接
func (s *Storage) Close() {
	if s.Results != nil {
		_ = s.Results.Close()
	}
}
