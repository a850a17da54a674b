package router

import (
	"context"

	"resume-screener-go/internal/api/handler"
	"resume-screener-go/internal/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

// HealthInfo 健康检查接口暴露的运行时信息
type HealthInfo struct {
	CatalogSize int
	DecoderType string
}

// RegisterRoutes 注册 API 路由。配置了 api_key 时整个 /api/v1
// 分组启用 X-API-Key 鉴权。
func RegisterRoutes(h *server.Hertz, cfg *config.Config, evaluateHandler *handler.EvaluateHandler, info HealthInfo) {
	api := h.Group("/api/v1")

	if cfg.Server.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
		))
	}

	api.POST("/evaluate", evaluateHandler.HandleEvaluate)
	api.GET("/evaluations/:batch_id", evaluateHandler.HandleGetEvaluation)

	api.GET("/health", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(consts.StatusOK, utils.H{
			"status":       "ok",
			"catalog_size": info.CatalogSize,
			"decoder":      info.DecoderType,
		})
	})
}
