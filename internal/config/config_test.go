package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigFromFile 从yaml文件加载配置并填充默认值
func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9000"
  api_key: "secret-key"
logger:
  level: "debug"
  format: "pretty"
skill_catalog:
  path: "testdata/skills.csv"
scoring:
  skill_weight: 0.7
  semantic_weight: 0.3
  max_features: 500
decoder:
  type: "tika"
  tika_server_url: "http://localhost:9998"
ner:
  enabled: true
  endpoint: "http://localhost:8001/ner"
redis:
  enabled: true
  address: "localhost:6379"
  result_ttl_minutes: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "secret-key", cfg.Server.APIKey)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "testdata/skills.csv", cfg.SkillCatalog.Path)
	assert.Equal(t, 0.7, cfg.Scoring.SkillWeight)
	assert.Equal(t, 0.3, cfg.Scoring.SemanticWeight)
	assert.Equal(t, 500, cfg.Scoring.MaxFeatures)
	assert.Equal(t, "tika", cfg.Decoder.Type)
	assert.Equal(t, "http://localhost:9998", cfg.Decoder.TikaServerURL)
	assert.True(t, cfg.NER.Enabled)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 60, cfg.Redis.ResultTTLMinutes)

	// 文件未指定的字段由默认值兜底
	assert.Greater(t, cfg.Scoring.Concurrency, 0)
	assert.Greater(t, cfg.Decoder.TimeoutSeconds, 0)
	assert.Greater(t, cfg.NER.MaxEntitiesPerType, 0)
}

// TestLoadConfigMissingFile 显式指定的路径不存在时报错
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestLoadConfigInvalidYAML 非法yaml报解析错误
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [this is: not valid"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestDefaultConfig 默认配置可以直接运行
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "eino", cfg.Decoder.Type)
	assert.Equal(t, "data/skills.csv", cfg.SkillCatalog.Path)
	assert.Equal(t, 0.5, cfg.Scoring.SkillWeight)
	assert.Equal(t, 0.5, cfg.Scoring.SemanticWeight)
	assert.Equal(t, 1000, cfg.Scoring.MaxFeatures)
	assert.Empty(t, cfg.Server.APIKey)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MinIO.Enabled)
}

// TestEnvOverrides 环境变量覆盖敏感配置项
func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  api_key: "from-file"
decoder:
  type: "tika"
  tika_server_url: "http://file:9998"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SCREENER_API_KEY", "from-env")
	t.Setenv("SCREENER_TIKA_URL", "http://env:9998")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Server.APIKey)
	assert.Equal(t, "http://env:9998", cfg.Decoder.TikaServerURL)
}

// TestWeightDefaultsOnlyWhenBothZero 只填写一个权重时不触发默认权重
func TestWeightDefaultsOnlyWhenBothZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
scoring:
  skill_weight: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.Scoring.SkillWeight)
	assert.Equal(t, 0.0, cfg.Scoring.SemanticWeight)

	// 文件未写的其他字段仍由默认值兜底
	assert.Equal(t, ":8000", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "data/skills.csv", cfg.SkillCatalog.Path)
	assert.Equal(t, "eino", cfg.Decoder.Type)
}
