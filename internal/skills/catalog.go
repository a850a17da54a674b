// Package skills 实现技能词表加载、同义词归一和基于词边界的技能提取。
package skills

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Catalog 是已加载的技能词表：规范技能名集合，加上构建好的
// 表面形式 → 规范名 的反向索引，供提取阶段 O(1) 归一。
type Catalog struct {
	skills map[string]struct{} // 词表文件中的原始条目（已小写）
	lookup map[string]string   // 表面形式 -> 归一后的技能名
	logger zerolog.Logger
}

// CatalogOption 词表构建选项
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	groups map[string][]string
	logger zerolog.Logger
}

// WithSynonymGroup 追加或覆盖一个同义词组（规范名 + 全部表面形式）。
// 表不在匹配逻辑里硬编码，扩展无需改动提取代码。
func WithSynonymGroup(canonical string, surfaces ...string) CatalogOption {
	return func(o *catalogOptions) {
		group := append([]string{canonical}, surfaces...)
		o.groups[strings.ToLower(canonical)] = group
	}
}

// WithCatalogLogger 设置词表日志
func WithCatalogLogger(logger zerolog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

func buildOptions(opts []CatalogOption) *catalogOptions {
	o := &catalogOptions{
		groups: make(map[string][]string, len(defaultSynonymGroups)),
		logger: zerolog.Nop(),
	}
	for canonical, group := range defaultSynonymGroups {
		o.groups[canonical] = group
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// LoadCatalog 从行式文件加载技能词表。首行视为表头并跳过，
// 条目统一转小写，空行忽略。文件缺失不是错误：记录警告并返回空词表，
// 这样流水线在没有词表时仍可运行（技能分退化为0）。
func LoadCatalog(path string, opts ...CatalogOption) (*Catalog, error) {
	o := buildOptions(opts)

	file, err := os.Open(path)
	if err != nil {
		o.logger.Warn().Str("path", path).Err(err).Msg("技能词表文件不可用，使用空词表")
		return newCatalog(nil, o), nil
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if first {
			first = false // 表头
			continue
		}
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		o.logger.Warn().Str("path", path).Err(err).Msg("读取技能词表中断，使用已读取部分")
	}

	catalog := newCatalog(entries, o)
	o.logger.Info().Str("path", path).Int("skills", catalog.Size()).Int("surfaces", len(catalog.lookup)).Msg("技能词表加载完成")
	return catalog, nil
}

// NewCatalog 直接从内存条目构建词表，测试和嵌入场景使用
func NewCatalog(entries []string, opts ...CatalogOption) *Catalog {
	return newCatalog(entries, buildOptions(opts))
}

func newCatalog(entries []string, o *catalogOptions) *Catalog {
	c := &Catalog{
		skills: make(map[string]struct{}, len(entries)),
		lookup: make(map[string]string, len(entries)),
		logger: o.logger,
	}
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		c.skills[e] = struct{}{}
	}

	// 反向索引构建分两步：
	// 1) 每个词表条目先指向自身；
	// 2) 规范名在词表中的同义词组，其全部表面形式改指规范名。
	// 因此同义词归一只在组的规范名本身被收录时生效，
	// 未收录规范名的条目保持原形参与匹配。
	for s := range c.skills {
		c.lookup[s] = s
	}
	for canonical, group := range o.groups {
		if _, ok := c.skills[canonical]; !ok {
			continue
		}
		for _, surface := range group {
			c.lookup[strings.ToLower(surface)] = canonical
		}
	}
	return c
}

// Size 返回词表条目数
func (c *Catalog) Size() int {
	return len(c.skills)
}

// Canonical 查询一个表面形式归一后的技能名
func (c *Catalog) Canonical(surface string) (string, bool) {
	name, ok := c.lookup[strings.ToLower(surface)]
	return name, ok
}

// Surfaces 返回参与匹配的全部表面形式，按长度降序排列，
// 保证组合匹配器里多词形式优先于其前缀命中。
func (c *Catalog) Surfaces() []string {
	surfaces := make([]string, 0, len(c.lookup))
	for s := range c.lookup {
		surfaces = append(surfaces, s)
	}
	sort.Slice(surfaces, func(i, j int) bool {
		if len(surfaces[i]) != len(surfaces[j]) {
			return len(surfaces[i]) > len(surfaces[j])
		}
		return surfaces[i] < surfaces[j]
	})
	return surfaces
}
