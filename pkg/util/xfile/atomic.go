package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic 以原子方式整体写入文件
//
// 在目标文件的同一目录下创建临时文件、写入全部内容、fsync 后 rename
// 到目标路径。rename 在同一文件系统内是原子的：并发读取方要么看不到
// 目标文件，要么看到完整内容，不存在半截文件可见的窗口。
//
// 任一步骤失败时清理临时文件并返回错误，目标路径保持原状。
// perm 仅允许权限位。
//
// 设计决策: 临时文件必须与目标同目录——跨文件系统的 rename 不是原子
// 操作（会退化为复制加删除），放在 os.TempDir 会破坏原子性保证。
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	if perm&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("perm %04o has non-permission bits: %w", perm, ErrInvalidPath)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}
	// 把内容推到磁盘再 rename，避免崩溃后出现指向空内容的完整文件名
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename temp file to %q: %w", path, err)
	}
	return nil
}
