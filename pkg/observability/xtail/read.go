package xtail

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

// cachedFile 读取缓存条目
//
// 日志文件写成后不可变，size+mtime 相同即视为同一份内容。
// 外部改动过的文件（size 或 mtime 变化）自动视为缓存失效。
type cachedFile struct {
	size    int64
	modTime time.Time
	content string
}

// GetLogs 返回文件名到文件内容的映射
//
// 列表在持锁状态下实时枚举（与落盘/清理互斥），保证不会观察到
// 变更进行到一半的目录。枚举失败返回包装了 [ErrListDir] 的错误。
//
// 单文件级别的故障不影响整次调用：
//   - 枚举与读取之间被外部删除的文件被跳过
//   - 非法 UTF-8 的文件被省略，并以 [ErrInvalidEncoding] 按文件上报
func (s *Sink) GetLogs() (map[string]string, error) {
	if s.disabled.Load() {
		return nil, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := ListFiles(s.dir, s.prefix)
	if err != nil {
		return nil, err
	}

	logs := make(map[string]string, len(files))
	for _, f := range files {
		content, err := s.readFile(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// 列表与读取之间被外部删除，容忍
				continue
			}
			s.report(err)
			continue
		}
		logs[f.Name] = content
	}
	return logs, nil
}

// readFile 读取单个日志文件，命中缓存时跳过磁盘读取
func (s *Sink) readFile(f FileInfo) (string, error) {
	path := filepath.Join(s.dir, f.Name)

	if s.cache != nil {
		if entry, ok := s.cache.Get(f.Name); ok {
			info, err := os.Stat(path)
			if err == nil && info.Size() == entry.size && info.ModTime().Equal(entry.modTime) {
				return entry.content, nil
			}
			// 文件已变化或消失，当作未命中处理
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, f.Name)
	}
	content := string(data)

	if s.cache != nil {
		if info, err := os.Stat(path); err == nil {
			s.cache.Add(f.Name, cachedFile{
				size:    info.Size(),
				modTime: info.ModTime(),
				content: content,
			})
		}
	}
	return content, nil
}
