package xtail

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// enforceBudgetLocked 把目录总字节数压回存储预算内
//
// 调用方必须已持有 s.mu，且 budget > 0。keep 是本轮刚提交的文件名，
// 参与总量统计但永远不是删除候选——即使它单个文件就超出预算，
// 也活过自己触发的这一轮，只会在后续落盘的淘汰中被清掉。
//
// 单个文件删不掉不会中止整轮淘汰：上报后跳到下一个更旧的文件，
// 一个顽固文件不应该挡住其余文件的回收。删除失败的文件不从超量中
// 扣除——它还占着磁盘。
func (s *Sink) enforceBudgetLocked(keep string) {
	files, err := ListFiles(s.dir, s.prefix)
	if err != nil {
		s.report(err)
		return
	}

	var total int64
	for _, f := range files {
		total += f.Size
	}
	overflow := total - s.budget
	if overflow <= 0 {
		return
	}

	for _, f := range files {
		if overflow <= 0 {
			break
		}
		if f.Name == keep {
			continue
		}
		if err := s.removeFn(filepath.Join(s.dir, f.Name)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// 已被外部删除，磁盘上确实不占空间了
				overflow -= f.Size
				continue
			}
			s.report(fmt.Errorf("%w: %s: %w", ErrDeleteFile, f.Name, err))
			continue
		}
		overflow -= f.Size
		s.metrics.addEviction(f.Size)
	}
}
