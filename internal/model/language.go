package model

import (
	"strings"

	"gorm.io/gorm"
)

var languageAliases = map[string]string{
	"golang":  "go",
	"py":      "python",
	"python3": "python",
	"js":      "javascript",
	"node":    "javascript",
	"ts":      "typescript",
	"c++":     "cpp",
	"cxx":     "cpp",
	"rs":      "rust",
}

// NormalizeLanguage 统一语言标识：小写并展开别名
func NormalizeLanguage(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := languageAliases[l]; ok {
		return alias
	}
	return l
}

// LanguageVariants 返回规范语言及其所有别名（均为小写），用于兼容未经规范化写入的题库数据
func LanguageVariants(lang string) []string {
	canonical := NormalizeLanguage(lang)
	if canonical == "" {
		return nil
	}
	variants := []string{canonical}
	for alias, target := range languageAliases {
		if target == canonical {
			variants = append(variants, alias)
		}
	}
	return variants
}

func (c *Challenge) BeforeSave(tx *gorm.DB) error {
	c.Language = NormalizeLanguage(c.Language)
	return nil
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Language = NormalizeLanguage(p.Language)
	return nil
}
