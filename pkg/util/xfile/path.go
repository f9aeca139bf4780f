package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// isWindowsAbsPath 检测 Windows 风格的绝对或驱动器相关路径。
// 在非 Windows 平台上 filepath.IsAbs 不识别 "C:\..." 或 "\\server\..."，
// 需要显式检测以防跨平台场景下的检查绕过。
func isWindowsAbsPath(path string) bool {
	if len(path) >= 2 && isASCIILetter(path[0]) && path[1] == ':' {
		return true
	}
	return len(path) >= 1 && path[0] == '\\'
}

func isASCIILetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 逐字符扫描实现零分配；'/' 和 '\' 都视为分隔符，
// 以覆盖 Windows 风格的穿越写法（即使在 Linux 上）。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对路径进行格式净化
//
// 功能：
//   - 路径规范化（消除 "." 和冗余斜杠）
//   - 阻止相对路径穿越（".." 路径段）
//   - 拒绝空路径、空字节与显式目录路径（尾随分隔符）
//
// 本函数只做格式检查，不限制目标目录；需要目录隔离语义时使用 [SafeJoin]。
// 绝对路径被接受，其中的 ".." 由 filepath.Clean 正常解析。
func SanitizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required: %w", ErrEmptyPath)
	}
	if containsNullByte(path) {
		return "", fmt.Errorf("path contains null byte: %w", ErrNullByte)
	}
	// 尾随分隔符的检查必须先于 Clean，Clean 会移除尾部斜杠
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return "", fmt.Errorf("path has a trailing separator: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(path)

	// 不能用 strings.Contains(cleaned, "..")：会误伤 "app..2024.log" 这类文件名
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in %q: %w", path, ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}

// SafeJoin 安全地将名字拼接到基准目录
//
// 与 SanitizePath 的区别：SafeJoin 保证结果路径始终在 base 目录内，
// 用于处理来自外部的文件名（如 Purge 的参数、CLI 的命令行输入）。
//
// 安全保证：
//   - 拒绝绝对路径（name 必须是相对路径，包括 Windows 形式）
//   - 拒绝路径穿越（".." 路径段）
//   - 验证拼接结果没有逃出 base
//
// base 可以是相对路径（先做 Clean）。不解析符号链接：本包服务于
// 进程自有的日志目录，对抗性场景应配合操作系统级别的目录权限控制。
func SafeJoin(base, name string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("base directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(base) {
		return "", fmt.Errorf("base contains null byte: %w", ErrNullByte)
	}
	cleanBase := filepath.Clean(base)

	if name == "" {
		return "", fmt.Errorf("name is required: %w", ErrEmptyPath)
	}
	if containsNullByte(name) {
		return "", fmt.Errorf("name contains null byte: %w", ErrNullByte)
	}
	if filepath.IsAbs(name) || isWindowsAbsPath(name) {
		return "", fmt.Errorf("name must be relative: %w", ErrInvalidPath)
	}
	cleanName := filepath.Clean(name)
	if hasDotDotSegment(cleanName) {
		return "", fmt.Errorf("path traversal in %q: %w", name, ErrPathTraversal)
	}

	joined := filepath.Join(cleanBase, cleanName)
	rel, err := filepath.Rel(cleanBase, joined)
	if err != nil {
		// 防御性分支：两个已清理的路径理论上总能计算相对关系，
		// 标准库行为变更时宁可拒绝也不放行
		return "", fmt.Errorf("cannot verify containment (%v): %w", err, ErrPathEscaped)
	}
	if hasDotDotSegment(rel) {
		return "", ErrPathEscaped
	}
	return joined, nil
}
