package xtail

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/omeyang/xtail/pkg/util/xfile"
)

// Purge 删除日志文件
//
// 不带参数时删除目录中所有符合命名约定的文件；命名约定之外的文件
// 一概不碰。带参数时只删除给定的那些名字。
//
// 名字在删除前经过双重校验：必须符合 <prefix><序号>.txt 的形状，
// 且经 [xfile.SafeJoin] 确认不会逃出日志目录——Purge 的参数可能
// 来自 GetLogs 的往返，也可能来自不可信的外部输入。
//
// 单个文件删除失败以 [ErrDeleteFile] 上报后跳过，不中止其余删除；
// 名字非法以 [ErrInvalidName] 上报后跳过。已经不存在的文件视为
// 删除成功。只有目录枚举失败会作为错误返回。
func (s *Sink) Purge(names ...string) error {
	if s.disabled.Load() {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(names) == 0 {
		files, err := ListFiles(s.dir, s.prefix)
		if err != nil {
			return err
		}
		names = make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
	}

	for _, name := range names {
		if _, ok := parseSeq(name, s.prefix); !ok {
			s.report(fmt.Errorf("%w: %q", ErrInvalidName, name))
			continue
		}
		path, err := xfile.SafeJoin(s.dir, name)
		if err != nil {
			s.report(fmt.Errorf("%w: %q: %w", ErrInvalidName, name, err))
			continue
		}
		if err := s.removeFn(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			s.report(fmt.Errorf("%w: %s: %w", ErrDeleteFile, name, err))
			continue
		}
		s.metrics.addPurge()
	}
	return nil
}
