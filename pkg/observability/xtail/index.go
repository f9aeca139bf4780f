package xtail

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
)

// 文件命名约定：<prefix><零填充序号>.txt
const (
	// fileSuffix 日志文件扩展名
	fileSuffix = ".txt"

	// seqWidth 序号的零填充宽度
	//
	// 6 位之内字典序等于数值序；超过 10^6 个文件后索引按数值排序，
	// 序号本身依旧单调，只是文件名变长。
	seqWidth = 6
)

// FileInfo 目录索引中的一个日志文件
type FileInfo struct {
	// Name 文件名（不含目录）
	Name string

	// Seq 文件名中嵌入的序号
	Seq uint64

	// Size 文件字节数
	Size int64
}

// fileName 由序号拼出文件名
func fileName(prefix string, seq uint64) string {
	return fmt.Sprintf("%s%0*d%s", prefix, seqWidth, seq, fileSuffix)
}

// parseSeq 从文件名中解析序号
//
// 返回 false 表示该名字不属于本命名约定（前缀不符、扩展名不符、
// 中段含非数字，或序号超出 uint64 范围）。
func parseSeq(name, prefix string) (uint64, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, fileSuffix) {
		return 0, false
	}
	digits := name[len(prefix) : len(name)-len(fileSuffix)]
	if len(digits) < seqWidth {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	seq, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// MatchesName 报告文件名是否符合日志文件命名约定（前缀 + 零填充序号 + .txt）
func MatchesName(name, prefix string) bool {
	_, ok := parseSeq(name, prefix)
	return ok
}

// ListFiles 枚举目录中符合命名约定的日志文件，按序号升序（最旧在前）返回
//
// 轮转恢复、预算淘汰、GetLogs、Purge 与 xtailctl 共用这一个索引。
// 列表永远实时枚举，不缓存——目录内容可能被外部删除，缓存会产生陈旧视图。
//
// 目录无法读取时返回包装了 [ErrListDir] 的错误，而不是空列表：
// 空列表与"还没有日志"不可区分，枚举失败必须显式暴露给调用方。
// 枚举与 stat 之间被外部删除的文件会被静默跳过。
func ListFiles(dir, prefix string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListDir, err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		seq, ok := parseSeq(entry.Name(), prefix)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// 文件在枚举后、stat 前被外部删除，容忍并跳过
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: stat %s: %w", ErrListDir, entry.Name(), err)
		}
		files = append(files, FileInfo{Name: entry.Name(), Seq: seq, Size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Seq < files[j].Seq })
	return files, nil
}
