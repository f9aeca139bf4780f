package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/omeyang/xtail/pkg/observability/xtail"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// sectionKey 应用配置文件中收纳 Sink 配置的键。
const sectionKey = "xtail"

// SinkFile Sink 的文件配置表示
//
// 字段与 xtail 的构造选项一一对应；零值字段使用 xtail 的默认值。
// FailFast 用指针区分"未配置"（默认快速失败）与显式 false。
type SinkFile struct {
	// Dir 日志目录（必需）
	Dir string `koanf:"dir"`

	// Prefix 文件名前缀
	Prefix string `koanf:"prefix"`

	// FlushThreshold 落盘阈值（字节）
	FlushThreshold int64 `koanf:"flush_threshold"`

	// StorageBudget 存储预算（字节），0 表示不限制
	StorageBudget int64 `koanf:"storage_budget"`

	// FailFast 初始化失败策略
	FailFast *bool `koanf:"fail_fast"`

	// Template 行格式模板
	Template string `koanf:"template"`

	// CacheSize 读取缓存条目数
	CacheSize int `koanf:"cache_size"`

	// CacheTTL 读取缓存条目存活时间
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Load 从文件加载 Sink 配置
//
// 根据扩展名自动检测格式（.yaml/.yml/.json）。
func Load(path string) (*SinkFile, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载 Sink 配置
//
// 需要显式指定格式，适用于配置内容来自环境（如 ConfigMap）的场景。
func LoadBytes(data []byte, format Format) (*SinkFile, error) {
	k := koanf.New(".")
	if len(data) > 0 {
		if err := loadData(k, data, format); err != nil {
			return nil, err
		}
	}

	// 配置键既可在顶层，也可收在 "xtail" 键下
	path := ""
	if k.Exists(sectionKey) {
		path = sectionKey
	}

	var sf SinkFile
	if err := k.Unmarshal(path, &sf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if sf.Dir == "" {
		return nil, ErrMissingDir
	}
	return &sf, nil
}

// Options 把文件配置转换为 xtail 构造选项
//
// 只为显式配置过的字段生成选项，未配置的字段落回 xtail 默认值。
func (f *SinkFile) Options() []xtail.Option {
	opts := make([]xtail.Option, 0, 6)
	if f.Prefix != "" {
		opts = append(opts, xtail.WithPrefix(f.Prefix))
	}
	if f.FlushThreshold > 0 {
		opts = append(opts, xtail.WithFlushThreshold(f.FlushThreshold))
	}
	if f.StorageBudget > 0 {
		opts = append(opts, xtail.WithStorageBudget(f.StorageBudget))
	}
	if f.FailFast != nil {
		opts = append(opts, xtail.WithFailFast(*f.FailFast))
	}
	if f.Template != "" {
		opts = append(opts, xtail.WithTemplate(f.Template))
	}
	if f.CacheSize > 0 && f.CacheTTL > 0 {
		opts = append(opts, xtail.WithReadCache(f.CacheSize, f.CacheTTL))
	}
	return opts
}

// Build 由文件配置直接构建 Sink
//
// 额外的 opts 追加在文件配置之后，可以覆盖文件中的同类设置
// （如注入 WithOnError 回调或测试时钟）。
func (f *SinkFile) Build(opts ...xtail.Option) (*xtail.Sink, error) {
	return xtail.New(f.Dir, append(f.Options(), opts...)...)
}

// detectFormat 根据文件扩展名检测配置格式
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// loadData 把原始字节按格式装载进 koanf 实例
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = kyaml.Parser()
	case FormatJSON:
		parser = kjson.Parser()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return nil
}
