package xconf

import "errors"

var (
	// ErrEmptyPath 配置文件路径为空
	ErrEmptyPath = errors.New("xconf: path is required")

	// ErrUnsupportedFormat 不支持的配置格式（仅支持 yaml/json）
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 配置读取或解析失败
	ErrLoadFailed = errors.New("xconf: load config failed")

	// ErrMissingDir 配置中缺少必需的 dir 键
	ErrMissingDir = errors.New("xconf: dir is required")
)
