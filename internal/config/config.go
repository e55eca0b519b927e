package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath 指定配置文件路径的环境变量
const EnvPath = "PDFNOTE_CONFIG"

// Config 运行期只读配置（一次解析，运行期不变）。
// YAML 使用 snake_case；未知字段在解析期失败。
type Config struct {
	// LogLevel: debug|info|warn|error
	LogLevel string `yaml:"log_level"`
	// LockPaths: 是否按路径串行化同一文件上的读写
	LockPaths bool `yaml:"lock_paths"`
	// JSONIndent: 输出 JSON 的缩进，空串表示紧凑输出
	JSONIndent string `yaml:"json_indent"`
	// PDFCPUConfigDir: 是否允许 pdfcpu 使用用户配置目录
	PDFCPUConfigDir bool `yaml:"pdfcpu_config_dir"`
}

// Defaults 返回默认配置
func Defaults() Config {
	return Config{
		LogLevel:   "warn",
		LockPaths:  true,
		JSONIndent: "  ",
	}
}

// Decode 在默认值之上解析 YAML，文件中未出现的字段保持默认
func Decode(r io.Reader) (Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Load 按优先级确定配置来源：显式路径 > 环境变量 > 默认值。
// 显式指定的文件不存在时报错。
func Load(path string) (Config, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvPath))
	}
	if path == "" {
		return Defaults(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 校验配置
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel 返回日志级别，verbose 时强制为 debug
func (c Config) SlogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// ParseLevel 解析日志级别名称
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
