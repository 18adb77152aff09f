package embedded

import (
	"embed"
)

// Content 包含内嵌的默认配置
// 当用户目录下没有配置文件时使用。
//
//go:embed config/*.yaml
var Content embed.FS
