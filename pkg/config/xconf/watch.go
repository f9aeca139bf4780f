package xconf

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchCallback 配置变更回调函数
//
// sf 为重新加载后的配置，err 表示重载是否成功（失败时 sf 为 nil）。
type WatchCallback func(sf *SinkFile, err error)

// defaultDebounce 默认防抖时间
//
// 编辑器保存往往触发一串 CREATE/WRITE/RENAME 事件，防抖窗口内
// 的多次变更只触发一次重载。
const defaultDebounce = 100 * time.Millisecond

// Watcher 配置文件监视器
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// WatchOption 监视器配置选项
type WatchOption func(*Watcher)

// WithDebounce 设置防抖时间（默认 100ms）
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watch 监视配置文件变更
//
// 文件发生写入/创建/改名（覆盖式保存的常见事件序列）后，重新加载
// 并通过回调通知。监视的是文件所在目录：很多编辑器用"写临时文件
// 再 rename"的方式保存，直接监视文件本身会在第一次保存后失效。
//
// 返回的 Watcher 需要调用 Stop 释放资源。
func Watch(path string, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if callback == nil {
		return nil, fmt.Errorf("xconf: callback is required")
	}
	if _, err := detectFormat(path); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		watcher:  fw,
		callback: callback,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("xconf: watch %q: %w", filepath.Dir(w.path), err)
	}

	go w.run()
	return w, nil
}

// run 事件循环
func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// 监视器内部错误不终止循环；下一次成功事件仍会触发重载
		}
	}
}

// scheduleReload 以防抖方式调度一次重载
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		sf, err := Load(w.path)
		w.callback(sf, err)
	})
}

// Stop 停止监视并释放资源
//
// 幂等。返回后不会再有新的回调被调度；已在防抖窗口中的回调可能
// 仍会执行一次。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	<-w.done
	return err
}
