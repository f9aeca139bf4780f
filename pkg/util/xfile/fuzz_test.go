package xfile

import (
	"path/filepath"
	"strings"
	"testing"
)

// FuzzSafeJoin 验证任意输入下的不变量：
// 不 panic，且任何成功的拼接结果都不会逃出基准目录。
func FuzzSafeJoin(f *testing.F) {
	f.Add("/var/log/app", "log_000001.txt")
	f.Add("logs", "a/b/c.txt")
	f.Add("/var/log", "../escape")
	f.Add("/var/log", `..\escape`)
	f.Add("/var/log", "/etc/passwd")
	f.Add("", "")
	f.Add("/var/log", "a\x00b")

	f.Fuzz(func(t *testing.T, base, name string) {
		joined, err := SafeJoin(base, name)
		if err != nil {
			return
		}
		rel, relErr := filepath.Rel(filepath.Clean(base), joined)
		if relErr != nil {
			t.Fatalf("SafeJoin(%q, %q) = %q: %v", base, name, joined, relErr)
		}
		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			t.Errorf("SafeJoin(%q, %q) = %q escapes base", base, name, joined)
		}
	})
}

// FuzzSanitizePath 验证任意输入下净化不 panic，
// 且成功净化的路径中不再含有 ".." 路径段。
func FuzzSanitizePath(f *testing.F) {
	f.Add("logs/app")
	f.Add("/var/log/app")
	f.Add("../outside")
	f.Add("app..2024.log")
	f.Add("logs//./app")
	f.Add("")

	f.Fuzz(func(t *testing.T, path string) {
		cleaned, err := SanitizePath(path)
		if err != nil {
			return
		}
		if hasDotDotSegment(cleaned) {
			t.Errorf("SanitizePath(%q) = %q still has a dot-dot segment", path, cleaned)
		}
	})
}
