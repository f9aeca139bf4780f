package xrotate

import (
	"sync/atomic"

	"github.com/omeyang/xtail/pkg/observability/xtail"
)

// tailRotator 基于 xtail.Sink 的 Rotator 实现
//
// 把编号文件落盘引擎适配到 io.WriteCloser 形状：
//   - Write 把 p 作为一条已格式化的行追加（阈值触发自动落盘）
//   - Rotate 等价于手动落盘
//   - Close 等价于 Shutdown（确保缓冲落盘），之后拒绝新写入
//
// Sink 的生命周期归调用方：Close 只关闭适配器这一层，
// 同一个 Sink 仍可被直接使用或再次适配。
type tailRotator struct {
	sink   *xtail.Sink
	closed atomic.Bool
}

// NewTail 把 xtail.Sink 适配为 Rotator
func NewTail(sink *xtail.Sink) (Rotator, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	return &tailRotator{sink: sink}, nil
}

// Write 实现 io.Writer 接口
func (r *tailRotator) Write(p []byte) (n int, err error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	return r.sink.Write(p)
}

// Close 实现 io.Closer 接口
func (r *tailRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.sink.Shutdown()
}

// Rotate 手动触发落盘
func (r *tailRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.sink.Flush()
}
