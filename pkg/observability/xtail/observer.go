package xtail

// 观察者采用三个相互独立的能力接口，而不是一个大而全的接口：
// 调用方只实现关心的能力，其余保持未注册即可，核心在零观察者时照常工作。

// WriteObserver 写入观察者
//
// 每次成功追加到尾部缓冲后，以最终写入的字面行内容通知。
// 回调在 Sink 的临界区内同步执行：不得回调同一 Sink 的任何方法，
// 也应避免耗时操作。
type WriteObserver interface {
	// OnWrite 收到一条已格式化的日志行
	OnWrite(line string)
}

// FlushObserver 落盘观察者
//
// 每次成功落盘后通知。manual 区分手动落盘（Flush/Shutdown）
// 与阈值触发的自动落盘。
type FlushObserver interface {
	// OnFlush 落盘已提交
	OnFlush(manual bool)
}

// FileObserver 文件创建观察者
//
// 每个新日志文件提交到磁盘后，以完整路径通知。
type FileObserver interface {
	// OnFileCreated 新日志文件已创建
	OnFileCreated(path string)
}

// WriteObserverFunc 函数式 WriteObserver 适配器
type WriteObserverFunc func(line string)

// OnWrite 实现 WriteObserver 接口
func (f WriteObserverFunc) OnWrite(line string) { f(line) }

// FlushObserverFunc 函数式 FlushObserver 适配器
type FlushObserverFunc func(manual bool)

// OnFlush 实现 FlushObserver 接口
func (f FlushObserverFunc) OnFlush(manual bool) { f(manual) }

// FileObserverFunc 函数式 FileObserver 适配器
type FileObserverFunc func(path string)

// OnFileCreated 实现 FileObserver 接口
func (f FileObserverFunc) OnFileCreated(path string) { f(path) }

// 编译时断言：函数适配器满足对应接口
var (
	_ WriteObserver = (WriteObserverFunc)(nil)
	_ FlushObserver = (FlushObserverFunc)(nil)
	_ FileObserver  = (FileObserverFunc)(nil)
)
