package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/25smoking/lockrun/internal/embedded"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig 指定配置文件路径
	EnvConfig = "LOCKRUN_CONFIG"
	// EnvLogLevel 覆盖配置文件中的日志级别
	EnvLogLevel = "LOCKRUN_LOG_LEVEL"

	defaultName = "lockrun.yaml"
)

// Config 是 lockrun 的全局配置
type Config struct {
	Log LogConfig `yaml:"log"`
}

// LogConfig 控制 zap 日志输出
type LogConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // console, json
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ========== Loader Functions ==========

func loadConfigData(configPath string) ([]byte, error) {
	// 1. 尝试从文件系统加载
	if configPath != "" {
		_, err := os.Stat(configPath)
		if err == nil {
			return os.ReadFile(configPath)
		}
		// 只有文件不存在才回退，权限等其他错误交给调用方
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// 2. 回退到内嵌配置
	// 注意: embed总是使用正斜杠
	return embedded.Content.ReadFile("config/" + defaultName)
}

// Load 读取配置。configPath 为空时使用 DefaultPath()；
// 文件不存在时使用内嵌默认配置。环境变量 LOCKRUN_LOG_LEVEL 优先于文件。
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath()
	}

	// 先装入内嵌默认值，用户文件只需写出要覆盖的字段
	defaults, err := embedded.Content.ReadFile("config/" + defaultName)
	if err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(defaults, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}

	data, err := loadConfigData(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Log.File != "" {
		file, err := homedir.Expand(cfg.Log.File)
		if err != nil {
			return nil, fmt.Errorf("failed to expand log file path: %w", err)
		}
		cfg.Log.File = file
	}

	return &cfg, nil
}

// DefaultPath 获取配置文件路径：LOCKRUN_CONFIG，否则 ~/.config/lockrun/config.yaml
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		if expanded, err := homedir.Expand(p); err == nil {
			return expanded
		}
		return p
	}

	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lockrun", "config.yaml")
}
