package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-screener-go/internal/config"
	"resume-screener-go/internal/constants"
	"resume-screener-go/internal/types"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrNotFound 批次结果不存在或已过期
var ErrNotFound = errors.New("批次结果不存在")

// ResultCache 用Redis按批次ID缓存序列化后的响应信封，
// 客户端可以在TTL内重新拉取刚算完的批次。TTL有界，
// 不做评估历史的持久化。
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewResultCache 创建结果缓存并探活
func NewResultCache(ctx context.Context, cfg *config.RedisConfig, logger zerolog.Logger) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	return &ResultCache{
		client: client,
		ttl:    time.Duration(cfg.ResultTTLMinutes) * time.Minute,
		logger: logger,
	}, nil
}

// Put 写入一个批次的响应信封
func (c *ResultCache) Put(ctx context.Context, batchID string, response *types.EvaluationResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("序列化批次结果失败: %w", err)
	}

	key := constants.EvaluationCacheKeyPrefix + batchID
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入批次结果失败: %w", err)
	}

	c.logger.Debug().Str("batch_id", batchID).Int("bytes", len(data)).Msg("批次结果已缓存")
	return nil
}

// Get 读取一个批次的响应信封，不存在或过期返回 ErrNotFound
func (c *ResultCache) Get(ctx context.Context, batchID string) (*types.EvaluationResponse, error) {
	key := constants.EvaluationCacheKeyPrefix + batchID
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取批次结果失败: %w", err)
	}

	var response types.EvaluationResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("解析缓存的批次结果失败: %w", err)
	}
	return &response, nil
}

// Close 关闭Redis连接
func (c *ResultCache) Close() error {
	return c.client.Close()
}
