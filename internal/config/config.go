package config

import (
	"fmt"
	"os"
	"path/filepath"

	"resume-screener-go/internal/constants"

	"gopkg.in/yaml.v3"
)

// Config 应用程序配置
type Config struct {
	// 服务器配置
	Server ServerConfig `yaml:"server"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`

	// 技能词表配置
	SkillCatalog SkillCatalogConfig `yaml:"skill_catalog"`

	// 评分配置
	Scoring ScoringConfig `yaml:"scoring"`

	// 文档解码器配置
	Decoder DecoderConfig `yaml:"decoder"`

	// 实体识别服务配置
	NER NERConfig `yaml:"ner"`

	// Redis结果缓存配置
	Redis RedisConfig `yaml:"redis"`

	// MinIO原始文件归档配置
	MinIO MinIOConfig `yaml:"minio"`
}

// ServerConfig 定义HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8000" 或 "0.0.0.0:8000"
	APIKey  string `yaml:"api_key"` // 非空时启用 X-API-Key 鉴权
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// SkillCatalogConfig 技能词表来源配置
type SkillCatalogConfig struct {
	Path string `yaml:"path"` // 词表文件路径，首行为表头
}

// ScoringConfig 评分与流水线配置
type ScoringConfig struct {
	SkillWeight    float64 `yaml:"skill_weight"`    // 技能分权重，默认0.5
	SemanticWeight float64 `yaml:"semantic_weight"` // 语义分权重，默认0.5
	MaxFeatures    int     `yaml:"max_features"`    // 相似度词表上限，默认1000
	Concurrency    int     `yaml:"concurrency"`     // 候选人并发评估上限
}

// DecoderConfig 文档解码器配置
type DecoderConfig struct {
	Type           string `yaml:"type"`            // "eino"（本地）或 "tika"（远程）
	TikaServerURL  string `yaml:"tika_server_url"` // Tika服务器地址，例如 http://localhost:9998
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 解码超时(秒)
}

// NERConfig 外部实体识别服务配置
type NERConfig struct {
	Enabled            bool   `yaml:"enabled"`               // 关闭时流水线使用空实体束
	Endpoint           string `yaml:"endpoint"`              // 识别服务地址
	TimeoutSeconds     int    `yaml:"timeout_seconds"`       // 请求超时(秒)
	MaxEntitiesPerType int    `yaml:"max_entities_per_type"` // 每类实体上限
}

// RedisConfig 批次结果缓存配置
type RedisConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Address          string `yaml:"address"`
	Password         string `yaml:"password"`
	DB               int    `yaml:"db"`
	PoolSize         int    `yaml:"pool_size"`
	ResultTTLMinutes int    `yaml:"result_ttl_minutes"` // 批次结果保留时长(分钟)
}

// MinIOConfig 原始上传文件归档配置
type MinIOConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UseSSL          bool   `yaml:"use_ssl"`
	Bucket          string `yaml:"bucket"` // 原始简历文件桶
}

// LoadConfig 从文件加载配置，未指定路径时在常见位置查找
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-screener", "config.yaml"),
		}
		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"),
			)
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		// 找不到配置文件时使用默认配置而不报错，核心流水线无任何必选外部依赖
		if configPath == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析进零值结构，默认值统一由 applyDefaults 填充。
	// 不能解析进预填充的默认配置：权重会被预填充成0.5，
	// 文件里只写了一个权重时"双零才回退默认"的规则就永远不会触发。
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	return config, nil
}

// DefaultConfig 返回可直接运行的默认配置
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyEnvOverrides 用环境变量覆盖敏感配置项
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCREENER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("SCREENER_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SCREENER_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretAccessKey = v
	}
	if v := os.Getenv("SCREENER_TIKA_URL"); v != "" {
		cfg.Decoder.TikaServerURL = v
	}
}

// applyDefaults 填充零值字段的默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8000"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "json"
	}
	if cfg.SkillCatalog.Path == "" {
		cfg.SkillCatalog.Path = "data/skills.csv"
	}
	if cfg.Scoring.SkillWeight == 0 && cfg.Scoring.SemanticWeight == 0 {
		cfg.Scoring.SkillWeight = constants.DefaultSkillWeight
		cfg.Scoring.SemanticWeight = constants.DefaultSemanticWeight
	}
	if cfg.Scoring.MaxFeatures <= 0 {
		cfg.Scoring.MaxFeatures = constants.DefaultMaxFeatures
	}
	if cfg.Scoring.Concurrency <= 0 {
		cfg.Scoring.Concurrency = constants.DefaultEvalConcurrency
	}
	if cfg.Decoder.Type == "" {
		cfg.Decoder.Type = "eino"
	}
	if cfg.Decoder.TimeoutSeconds <= 0 {
		cfg.Decoder.TimeoutSeconds = int(constants.DefaultDecoderTimeout.Seconds())
	}
	if cfg.NER.TimeoutSeconds <= 0 {
		cfg.NER.TimeoutSeconds = int(constants.DefaultNERTimeout.Seconds())
	}
	if cfg.NER.MaxEntitiesPerType <= 0 {
		cfg.NER.MaxEntitiesPerType = constants.DefaultMaxEntitiesPerType
	}
	if cfg.Redis.ResultTTLMinutes <= 0 {
		cfg.Redis.ResultTTLMinutes = int(constants.DefaultResultCacheTTL.Minutes())
	}
}
