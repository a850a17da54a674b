package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSkillsFile 写一个临时词表文件，首行为表头
func writeSkillsFile(t *testing.T, lines string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.csv")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

// TestLoadCatalogSkipsHeaderAndBlanks 验证表头跳过、空行忽略、大小写折叠
func TestLoadCatalogSkipsHeaderAndBlanks(t *testing.T) {
	path := writeSkillsFile(t, "skill\nPython\n\n  SQL  \njava\n")

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, 3, catalog.Size())

	canonical, ok := catalog.Canonical("python")
	assert.True(t, ok)
	assert.Equal(t, "python", canonical)

	_, ok = catalog.Canonical("skill")
	assert.False(t, ok, "表头行不应进入词表")
}

// TestLoadCatalogMissingFile 验证文件缺失返回空词表而不是错误
func TestLoadCatalogMissingFile(t *testing.T) {
	catalog, err := LoadCatalog("/nonexistent/path/skills.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, catalog.Size())
}

// TestCatalogSynonymReverseIndex 验证同义词反向索引的归一语义
func TestCatalogSynonymReverseIndex(t *testing.T) {
	// "machine learning" 在词表中：同义词 "ml" 归一到它
	catalog := NewCatalog([]string{"machine learning", "python"})

	canonical, ok := catalog.Canonical("ml")
	require.True(t, ok)
	assert.Equal(t, "machine learning", canonical)

	canonical, ok = catalog.Canonical("machine learning")
	require.True(t, ok)
	assert.Equal(t, "machine learning", canonical)
}

// TestCatalogSynonymOwnerAbsent 规范名不在词表中时，词表条目保持原形
func TestCatalogSynonymOwnerAbsent(t *testing.T) {
	// 词表只收录了 "aws"，组的规范名 "amazon web services" 不在词表中
	catalog := NewCatalog([]string{"aws"})

	canonical, ok := catalog.Canonical("aws")
	require.True(t, ok)
	assert.Equal(t, "aws", canonical, "规范名未收录时不应发生归一")

	// 组内其他表面形式也不参与匹配
	_, ok = catalog.Canonical("amazon web services")
	assert.False(t, ok)
}

// TestCatalogSynonymOwnerWins 词表同时含规范名和同义词时，归一到规范名
func TestCatalogSynonymOwnerWins(t *testing.T) {
	catalog := NewCatalog([]string{"aws", "amazon web services"})

	canonical, ok := catalog.Canonical("aws")
	require.True(t, ok)
	assert.Equal(t, "amazon web services", canonical)
}

// TestCatalogCustomSynonymGroup 验证同义词表可在构建时扩展
func TestCatalogCustomSynonymGroup(t *testing.T) {
	catalog := NewCatalog(
		[]string{"golang"},
		WithSynonymGroup("golang", "go"),
	)

	canonical, ok := catalog.Canonical("go")
	require.True(t, ok)
	assert.Equal(t, "golang", canonical)
}

// TestCatalogSurfacesLongestFirst 表面形式应按长度降序，保证多词形式优先命中
func TestCatalogSurfacesLongestFirst(t *testing.T) {
	catalog := NewCatalog([]string{"machine learning", "java"})

	surfaces := catalog.Surfaces()
	require.NotEmpty(t, surfaces)
	for i := 1; i < len(surfaces); i++ {
		assert.GreaterOrEqual(t, len(surfaces[i-1]), len(surfaces[i]))
	}
	assert.Equal(t, "machine learning", surfaces[0])
}
