package xtail

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/xtail/pkg/util/xfile"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// 编译时断言：Sink 可以用作 io.Writer（参见 Write 方法）
var _ interface {
	Write(p []byte) (int, error)
} = (*Sink)(nil)

// writeCallDepth log 内部解析 {source} 时跳过的栈帧数
// （callerSource → log → 级别方法 → 调用方）
const writeCallDepth = 3

// Sink 缓冲日志落盘器
//
// 必须通过 [New] 创建，零值不可用。所有方法并发安全。
// 生命周期与配置由调用方持有，本包不维护任何全局实例。
type Sink struct {
	dir      string
	prefix   string
	thresh   int64
	budget   int64
	format   *entryFormat
	location *time.Location
	fileMode os.FileMode
	id       string

	onError  func(error)
	writeObs WriteObserver
	flushObs FlushObserver
	fileObs  FileObserver

	now     func() time.Time
	metrics *sinkMetrics
	cache   *expirable.LRU[string, cachedFile]

	// mu 同时保护尾部缓冲、序号计数器与目录变更：
	// 落盘会触碰全部三者，单把锁天然避免了锁序问题。
	mu  sync.Mutex
	buf bytes.Buffer
	seq uint64

	disabled atomic.Bool

	// 可注入的文件操作（仅用于测试模拟写入/删除失败）
	writeFileFn func(path string, data []byte, perm os.FileMode) error
	removeFn    func(path string) error
}

// New 创建日志落盘器
//
// 确保目标目录存在，并通过扫描现存文件恢复序号计数器
// （取最大现存序号加一；目录为空时从 0 开始）。
//
// 目录不可用时的行为由 [WithFailFast] 决定：
//   - 快速失败（默认）：返回包装了 [ErrDirUnavailable] 的错误
//   - 降级：返回已禁用的 Sink 和 nil 错误，原因通过错误回调上报，
//     后续所有操作空转并上报 [ErrDisabled]
func New(dir string, opts ...Option) (*Sink, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	safeDir, err := xfile.SanitizePath(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirUnavailable, err)
	}

	s := &Sink{
		dir:         safeDir,
		prefix:      cfg.prefix,
		thresh:      cfg.threshold,
		budget:      cfg.budget,
		format:      newEntryFormat(cfg.template),
		location:    cfg.location,
		fileMode:    cfg.fileMode,
		id:          uuid.NewString(),
		onError:     cfg.onError,
		writeObs:    cfg.writeObs,
		flushObs:    cfg.flushObs,
		fileObs:     cfg.fileObs,
		now:         cfg.clock,
		writeFileFn: xfile.WriteFileAtomic,
		removeFn:    os.Remove,
	}

	if cfg.cacheSize > 0 {
		s.cache = expirable.NewLRU[string, cachedFile](cfg.cacheSize, nil, cfg.cacheTTL)
	}

	metrics, err := newSinkMetrics(cfg.meterProvider, s.id)
	if err != nil {
		return nil, err
	}
	s.metrics = metrics

	if err := s.initDir(); err != nil {
		if cfg.failFast {
			return nil, err
		}
		s.disabled.Store(true)
		s.report(err)
		return s, nil
	}

	return s, nil
}

// initDir 确保目录存在并恢复序号计数器
func (s *Sink) initDir() error {
	if err := xfile.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("%w: %w", ErrDirUnavailable, err)
	}
	files, err := ListFiles(s.dir, s.prefix)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDirUnavailable, err)
	}
	if len(files) > 0 {
		// 列表按序号升序，末尾即最大现存序号；
		// 即使 0..K 之间有空洞（外部删除），计数器也只看最大值。
		s.seq = files[len(files)-1].Seq + 1
	}
	return nil
}

// Debug 记录 Debug 级别日志
func (s *Sink) Debug(msg string) { s.log(LevelDebug, msg) }

// Info 记录 Info 级别日志
func (s *Sink) Info(msg string) { s.log(LevelInfo, msg) }

// Warn 记录 Warn 级别日志
func (s *Sink) Warn(msg string) { s.log(LevelWarn, msg) }

// Error 记录 Error 级别日志
func (s *Sink) Error(msg string) { s.log(LevelError, msg) }

// Fatal 记录 Fatal 级别日志
//
// 只是最高严重级别，不终止进程：库永远不替调用方决定退出。
func (s *Sink) Fatal(msg string) { s.log(LevelFatal, msg) }

// Log 以指定级别记录日志
func (s *Sink) Log(level Level, msg string) { s.log(level, msg) }

// log 格式化并追加一条日志
//
// 写入调用永不失败：落盘错误通过错误回调上报，而不是抛回写入方——
// 记日志的代价不能是业务路径上的一个 error 分支。
func (s *Sink) log(level Level, msg string) {
	if s.disabled.Load() {
		s.report(ErrDisabled)
		return
	}

	// {source} 与时间戳都在锁外解析，临界区只做追加和可能的落盘
	var source string
	if s.format.hasSource {
		source = callerSource(writeCallDepth)
	}
	line := s.format.render(level, msg, s.now().In(s.location), source)

	s.append(line)
}

// Write 实现 io.Writer：把 p 作为一条已格式化的日志行追加
//
// 尾部换行会被剥掉（条目分隔由缓冲负责），其余字节原样保留。
// 让 Sink 可以直接挂到 log.SetOutput 或任何接受 io.Writer 的地方。
func (s *Sink) Write(p []byte) (int, error) {
	if s.disabled.Load() {
		return 0, ErrDisabled
	}
	line := string(bytes.TrimSuffix(p, []byte("\n")))
	if line == "" {
		return len(p), nil
	}
	s.append(line)
	return len(p), nil
}

// append 追加一条已格式化的行，必要时在同一临界区内触发自动落盘
//
// 落盘的判定与执行必须是一个原子单元：判定在锁外会让两个写入方
// 对同一份缓冲内容各自落盘一次。
func (s *Sink) append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buf.Len() > 0 {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)

	s.metrics.addEntry(int64(len(line)))
	s.notifyWrite(line)

	if int64(s.buf.Len()) > s.thresh {
		// 阈值是硬背压点：越过阈值的写入方在自己的调用栈上付出落盘代价
		if err := s.flushLocked(false); err != nil {
			s.report(err)
		}
	}
}

// Flush 手动落盘
//
// 无视阈值立即把缓冲写入下一个编号文件；缓冲为空时是成功的空操作。
// 观察者会收到 manual=true 的通知。
func (s *Sink) Flush() error {
	if s.disabled.Load() {
		return ErrDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(true)
}

// Shutdown 关停前确保缓冲落盘
//
// 幂等，可多次调用；不会阻止后续写入——进程终止与否是调用方的事，
// Shutdown 只保证"到此为止的数据已在磁盘上"。
func (s *Sink) Shutdown() error {
	return s.Flush()
}

// Disabled 返回 Sink 是否处于降级禁用状态
func (s *Sink) Disabled() bool {
	return s.disabled.Load()
}

// ID 返回本实例的标识（用于观测属性与多实例区分）
func (s *Sink) ID() string {
	return s.id
}

// Pending 返回尾部缓冲中尚未落盘的字节数
func (s *Sink) Pending() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.buf.Len())
}

// report 通过回调上报内部错误
//
// 设计决策: 不落入任何日志库——Sink 自身就是日志出口，内部错误再写
// 回去会递归。回调 panic 被 recover 隔离，不反向中断写入路径。
func (s *Sink) report(err error) {
	if err == nil {
		return
	}
	s.metrics.addInternalError()
	if s.onError == nil {
		return
	}
	defer func() { _ = recover() }()
	s.onError(err)
}

// notifyWrite 通知写入观察者（panic 隔离）
func (s *Sink) notifyWrite(line string) {
	if s.writeObs == nil {
		return
	}
	defer func() { _ = recover() }()
	s.writeObs.OnWrite(line)
}

// notifyFlush 通知落盘观察者（panic 隔离）
func (s *Sink) notifyFlush(manual bool) {
	if s.flushObs == nil {
		return
	}
	defer func() { _ = recover() }()
	s.flushObs.OnFlush(manual)
}

// notifyFile 通知文件创建观察者（panic 隔离）
func (s *Sink) notifyFile(path string) {
	if s.fileObs == nil {
		return
	}
	defer func() { _ = recover() }()
	s.fileObs.OnFileCreated(path)
}
