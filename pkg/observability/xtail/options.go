package xtail

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// 默认配置值
const (
	// DefaultPrefix 默认文件名前缀
	DefaultPrefix = "log_"

	// DefaultFlushThreshold 默认落盘阈值（字节）
	// 缓冲字节数超过该值即触发自动落盘
	DefaultFlushThreshold = 1000

	// DefaultFileMode 默认日志文件权限
	DefaultFileMode = os.FileMode(0600)

	// DefaultCacheSize 默认读取缓存条目数
	DefaultCacheSize = 64

	// DefaultCacheTTL 默认读取缓存条目存活时间
	DefaultCacheTTL = time.Minute
)

// 配置上限
const (
	// maxPrefixLen 前缀长度上限，防止拼出超出文件系统限制的文件名
	maxPrefixLen = 128
)

// config Sink 配置
//
// 通过 Option 填充，仅在构造期使用，构造后不可变。
type config struct {
	prefix    string
	threshold int64
	budget    int64
	failFast  bool
	template  string
	location  *time.Location
	fileMode  os.FileMode
	cacheSize int
	cacheTTL  time.Duration

	onError  func(error)
	writeObs WriteObserver
	flushObs FlushObserver
	fileObs  FileObserver

	meterProvider metric.MeterProvider
	clock         func() time.Time
}

// Option Sink 配置选项函数
type Option func(*config)

func defaultConfig() *config {
	return &config{
		prefix:    DefaultPrefix,
		threshold: DefaultFlushThreshold,
		budget:    0,
		failFast:  true,
		template:  DefaultTemplate,
		location:  time.Local,
		fileMode:  DefaultFileMode,
		cacheSize: DefaultCacheSize,
		cacheTTL:  DefaultCacheTTL,
		clock:     time.Now,
	}
}

// WithPrefix 设置日志文件名前缀
//
// 前缀成为命名约定的一部分：只有 <prefix><序号>.txt 形式的文件
// 会被索引、淘汰与清理。不允许包含路径分隔符。
func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

// WithFlushThreshold 设置落盘阈值（字节）
//
// 追加后缓冲字节数严格大于该值时触发自动落盘。
// 单条超过阈值的条目仍会完整写入它触发的那个文件。
func WithFlushThreshold(bytes int64) Option {
	return func(c *config) {
		c.threshold = bytes
	}
}

// WithStorageBudget 设置磁盘存储预算（字节）
//
// 0 表示不限制。配置后每次成功落盘都会从最旧文件开始淘汰，
// 直到目录总字节数回到预算内。
func WithStorageBudget(bytes int64) Option {
	return func(c *config) {
		c.budget = bytes
	}
}

// WithFailFast 设置初始化失败策略
//
// true（默认）：目录不可用时 New 返回错误。
// false：New 返回已禁用的 Sink，所有操作降级为空操作并上报 [ErrDisabled]。
//
// 设计决策: 库永远不主动终止进程——即使快速失败也只是返回错误，
// 是否退出由调用方决定。
func WithFailFast(enabled bool) Option {
	return func(c *config) {
		c.failFast = enabled
	}
}

// WithTemplate 设置行格式模板
//
// 识别的占位符：{level} {date} {time} {tz} {source} {message}。
// 空字符串表示使用 [DefaultTemplate]。
func WithTemplate(template string) Option {
	return func(c *config) {
		c.template = template
	}
}

// WithLocation 设置时间戳时区
//
// 影响 {date}/{time}/{tz} 占位符的渲染，默认 time.Local。
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithFileMode 设置日志文件权限
//
// 默认 0600。仅允许权限位（0000~0777）。
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}

// WithReadCache 设置 GetLogs 的内容缓存
//
// 日志文件写成后不可变，内容可以安全缓存；目录列表永远实时枚举，
// 不参与缓存。size 为 0 时禁用缓存。
func WithReadCache(size int, ttl time.Duration) Option {
	return func(c *config) {
		c.cacheSize = size
		c.cacheTTL = ttl
	}
}

// WithOnError 设置内部错误回调
//
// 落盘失败、淘汰/清理中的单文件删除失败、读取中的解码失败等
// 都通过该回调上报。默认为 nil（静默忽略）。
//
// 安全约束：回调不得调用同一 Sink 的任何方法，否则死锁；
// 也不要把错误再写回这个 Sink——日志系统的失败不能靠它自己记录。
func WithOnError(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// WithWriteObserver 注册写入观察者
func WithWriteObserver(obs WriteObserver) Option {
	return func(c *config) {
		c.writeObs = obs
	}
}

// WithFlushObserver 注册落盘观察者
func WithFlushObserver(obs FlushObserver) Option {
	return func(c *config) {
		c.flushObs = obs
	}
}

// WithFileObserver 注册文件创建观察者
func WithFileObserver(obs FileObserver) Option {
	return func(c *config) {
		c.fileObs = obs
	}
}

// WithMeterProvider 设置 OTel MeterProvider
//
// 未设置时使用全局 otel.GetMeterProvider()（默认为 no-op）。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		if provider != nil {
			c.meterProvider = provider
		}
	}
}

// WithClock 设置时间源
//
// 测试注入点：让时间戳可控。nil 恢复 time.Now。
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now == nil {
			now = time.Now
		}
		c.clock = now
	}
}

// validate 校验配置
func (c *config) validate() error {
	if c.prefix == "" || len(c.prefix) > maxPrefixLen {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, c.prefix)
	}
	if strings.ContainsAny(c.prefix, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidPrefix, c.prefix)
	}
	if c.threshold <= 0 {
		return fmt.Errorf("%w: got %d, want > 0", ErrInvalidThreshold, c.threshold)
	}
	if c.budget < 0 {
		return fmt.Errorf("%w: got %d, want >= 0", ErrInvalidBudget, c.budget)
	}
	if c.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits allowed", ErrInvalidFileMode, c.fileMode)
	}
	if c.cacheSize < 0 {
		c.cacheSize = 0
	}
	return nil
}
