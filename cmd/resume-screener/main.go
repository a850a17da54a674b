package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-screener-go/internal/api/handler"
	"resume-screener-go/internal/api/router"
	"resume-screener-go/internal/config"
	"resume-screener-go/internal/decoder"
	"resume-screener-go/internal/logger"
	"resume-screener-go/internal/ner"
	"resume-screener-go/internal/pipeline"
	"resume-screener-go/internal/similarity"
	"resume-screener-go/internal/skills"
	"resume-screener-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	initLogger(cfg)
	logger.Info().Str("address", cfg.Server.Address).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 技能词表与提取器，进程内加载一次，之后只读
	catalog, err := skills.LoadCatalog(cfg.SkillCatalog.Path,
		skills.WithCatalogLogger(logger.Logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载技能词表失败")
	}
	extractor := skills.NewExtractor(catalog)

	scorer := similarity.NewTFIDFScorer(
		similarity.WithMaxFeatures(cfg.Scoring.MaxFeatures),
		similarity.WithTFIDFLogger(logger.Logger),
	)

	// 实体识别器：显式构建并注入，不走隐藏全局状态
	var recognizer ner.Recognizer = &ner.NoopRecognizer{}
	if cfg.NER.Enabled && cfg.NER.Endpoint != "" {
		recognizer = ner.NewHTTPRecognizer(cfg.NER.Endpoint,
			ner.WithNERTimeout(time.Duration(cfg.NER.TimeoutSeconds)*time.Second),
			ner.WithMaxEntitiesPerType(cfg.NER.MaxEntitiesPerType),
			ner.WithNERLogger(logger.Logger),
		)
		logger.Info().Str("endpoint", cfg.NER.Endpoint).Msg("使用外部实体识别服务")
	} else {
		logger.Info().Msg("实体识别未启用，实体束为空")
	}

	// 权重不注入流水线：HTTP层每个请求都解析出明确的权重
	evaluator := pipeline.NewEvaluator(extractor, scorer,
		pipeline.WithConcurrency(cfg.Scoring.Concurrency),
		pipeline.WithRecognizer(recognizer),
		pipeline.WithLogger(logger.Logger),
	)

	// 文档解码器：默认本地Eino解析，配置了Tika时走远程
	var docDecoder decoder.Decoder
	decodeTimeout := time.Duration(cfg.Decoder.TimeoutSeconds) * time.Second
	if cfg.Decoder.Type == "tika" && cfg.Decoder.TikaServerURL != "" {
		docDecoder = decoder.NewTikaDecoder(cfg.Decoder.TikaServerURL,
			decoder.WithTikaTimeout(decodeTimeout),
			decoder.WithTikaLogger(logger.Logger),
		)
		logger.Info().Str("server", cfg.Decoder.TikaServerURL).Msg("使用Tika文档解码器")
	} else {
		docDecoder, err = decoder.NewEinoPDFDecoder(ctx,
			decoder.WithEinoTimeout(decodeTimeout),
			decoder.WithEinoLogger(logger.Logger),
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("创建PDF解码器失败")
		}
		logger.Info().Msg("使用本地Eino PDF解码器")
	}

	store := storage.NewStorage(ctx, cfg, logger.Logger)
	defer store.Close()

	evaluateHandler := handler.NewEvaluateHandler(cfg, evaluator, docDecoder, store, logger.Logger)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, cfg, evaluateHandler, router.HealthInfo{
		CatalogSize: catalog.Size(),
		DecoderType: cfg.Decoder.Type,
	})

	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化zerolog并把hertz的hlog接到同一个输出
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	glog.SetLogger(hertzadapter.From(logger.Logger))
}
