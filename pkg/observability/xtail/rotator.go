package xtail

import (
	"fmt"
	"path/filepath"
	"time"

	retry "github.com/avast/retry-go/v5"
)

// 落盘写入的瞬态重试参数
//
// 只覆盖一次 flush 尝试内部的短暂抖动（如被信号打断的系统调用）。
// 整次 flush 失败后缓冲原样保留、序号不前进，下一次 flush 会
// 对同一个目标文件重做，所以这里不需要激进的重试策略。
const (
	flushAttempts   = 3
	flushRetryDelay = 5 * time.Millisecond
)

// flushLocked 把尾部缓冲提交为下一个编号文件
//
// 调用方必须已持有 s.mu。单次尝试的状态机：
//
//	Idle → Flushing → {Committed | Failed}
//
// Committed：缓冲清空、序号前进、观察者得到通知、预算淘汰执行。
// Failed：缓冲与序号原样保留，返回包装了 [ErrWriteFile] 的错误，
// 下一次落盘重试同一个目标文件。不存在对调用方可见的半提交状态。
func (s *Sink) flushLocked(manual bool) error {
	if s.buf.Len() == 0 {
		// 空缓冲不产生空文件
		return nil
	}

	name := fileName(s.prefix, s.seq)
	path := filepath.Join(s.dir, name)
	data := s.buf.Bytes()

	err := retry.New(
		retry.Attempts(flushAttempts),
		retry.Delay(flushRetryDelay),
		retry.LastErrorOnly(true),
	).Do(func() error {
		// 整文件原子写：并发读取方要么看到完整文件，要么什么都看不到，
		// 永远不会看到半截内容
		return s.writeFileFn(path, data, s.fileMode)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFile, name, err)
	}

	written := int64(len(data))
	s.buf.Reset()
	s.seq++

	s.metrics.addFlush(manual, written)
	s.notifyFlush(manual)
	s.notifyFile(path)

	if s.budget > 0 {
		// 淘汰在提交之后执行：刚写入的文件参与总量统计，
		// 但在它自己触发的这一轮里永远不是删除候选
		s.enforceBudgetLocked(name)
	}
	return nil
}
