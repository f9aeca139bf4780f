package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
)

// writeLogFile 在目录中放置一个符合命名约定的日志文件
func writeLogFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// runApp 以给定参数执行 CLI，返回错误
func runApp(t *testing.T, args ...string) error {
	t.Helper()
	app := createApp()
	return app.Run(context.Background(), append([]string{"xtailctl"}, args...))
}

// =============================================================================
// 错误类型
// =============================================================================

func TestExitErrorType(t *testing.T) {
	err := &exitError{code: 3}
	if err.Error() != "" {
		t.Errorf("exitError.Error() = %q, want empty", err.Error())
	}
	var target *exitError
	if !errors.As(err, &target) {
		t.Error("errors.As failed for *exitError")
	}
	if target.code != 3 {
		t.Errorf("code = %d, want 3", target.code)
	}
}

func TestUsageErrorType(t *testing.T) {
	err := &usageError{msg: "test error"}
	if err.Error() != "test error" {
		t.Errorf("usageError.Error() = %q, want %q", err.Error(), "test error")
	}
	var target *usageError
	if !errors.As(err, &target) {
		t.Error("errors.As failed for *usageError")
	}
}

// =============================================================================
// 参数校验
// =============================================================================

func TestCommandsRequireDir(t *testing.T) {
	for _, cmd := range []string{"ls", "cat", "purge", "follow"} {
		t.Run(cmd, func(t *testing.T) {
			err := runApp(t, cmd)
			var usageErr *usageError
			if !errors.As(err, &usageErr) {
				t.Fatalf("expected *usageError, got %T: %v", err, err)
			}
		})
	}
}

func TestPurgeRequiresAllOrNames(t *testing.T) {
	dir := t.TempDir()

	err := runApp(t, "--dir", dir, "purge")
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}

	// --all 与文件名互斥
	err = runApp(t, "--dir", dir, "purge", "--all", "log_000000.txt")
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

func TestExportRequiresSingleTarget(t *testing.T) {
	dir := t.TempDir()
	err := runApp(t, "--dir", dir, "export")
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

// =============================================================================
// 命令行为
// =============================================================================

func TestLsListsConventionFilesOnly(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "log_000000.txt", "first")
	writeLogFile(t, dir, "log_000001.txt", "second")
	writeLogFile(t, dir, "stray.txt", "ignored")

	if err := runApp(t, "--dir", dir, "ls"); err != nil {
		t.Fatalf("ls failed: %v", err)
	}
}

func TestPurgeAllRemovesConventionFiles(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "log_000000.txt", "a")
	writeLogFile(t, dir, "log_000001.txt", "b")
	writeLogFile(t, dir, "keep.md", "untouched")

	if err := runApp(t, "--dir", dir, "purge", "--all"); err != nil {
		t.Fatalf("purge --all failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "log_000000.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Error("log_000000.txt should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.md")); err != nil {
		t.Error("keep.md should be untouched")
	}
}

func TestPurgeByName(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "log_000000.txt", "a")
	writeLogFile(t, dir, "log_000001.txt", "b")

	if err := runApp(t, "--dir", dir, "purge", "log_000000.txt"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "log_000001.txt")); err != nil {
		t.Error("log_000001.txt should survive")
	}
}

func TestPurgeRejectsTraversalName(t *testing.T) {
	dir := t.TempDir()
	err := runApp(t, "--dir", dir, "purge", "../escape.txt")
	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *usageError, got %T: %v", err, err)
	}
}

func TestExportCopiesAndVerifies(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "backup")
	writeLogFile(t, src, "log_000000.txt", "payload zero")
	writeLogFile(t, src, "log_000001.txt", "payload one")

	if err := runApp(t, "--dir", src, "export", dst); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	for name, want := range map[string]string{
		"log_000000.txt": "payload zero",
		"log_000001.txt": "payload one",
	} {
		data, err := os.ReadFile(filepath.Join(dst, name))
		if err != nil {
			t.Fatalf("read exported %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}
}

func TestHashFileMatchesContent(t *testing.T) {
	dir := t.TempDir()
	writeLogFile(t, dir, "log_000000.txt", "checksum me")

	sum, err := hashFile(dir, "log_000000.txt")
	if err != nil {
		t.Fatal(err)
	}
	if want := xxhash.Sum64String("checksum me"); sum != want {
		t.Errorf("hashFile = %x, want %x", sum, want)
	}
}

func TestDefaultExportJobsBounded(t *testing.T) {
	jobs := defaultExportJobs()
	if jobs < 1 || jobs > 8 {
		t.Errorf("defaultExportJobs() = %d, want 1~8", jobs)
	}
}
