package xfile

import (
	"fmt"
	"os"
)

// DefaultDirPerm 默认目录权限
//
// 0750：所有者读写执行，组读执行，其他无权限。
// 符合 gosec G301 安全建议。
const DefaultDirPerm = 0750

// EnsureDir 确保目录存在
//
// 使用默认权限 0750 逐级创建；目录已存在时不报错。
// 路径存在但不是目录时返回错误。
//
// 安全注意：底层使用 os.MkdirAll，会跟随符号链接。
// 如需防护此风险，调用前先用 [SanitizePath] 约束路径来源。
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%q exists and is not a directory: %w", dir, ErrInvalidPath)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %q: %w", dir, err)
	}
	if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
