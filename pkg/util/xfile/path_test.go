package xfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SanitizePath
// =============================================================================

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "常规相对路径",
			path: "logs/app",
			want: filepath.Join("logs", "app"),
		},
		{
			name: "绝对路径",
			path: "/var/log/app",
			want: "/var/log/app",
		},
		{
			name: "冗余斜杠与点被规范化",
			path: "logs//./app",
			want: filepath.Join("logs", "app"),
		},
		{
			name: "文件名中的连点不是穿越",
			path: "logs/app..2024.log",
			want: filepath.Join("logs", "app..2024.log"),
		},
		{
			name:    "空路径",
			path:    "",
			wantErr: ErrEmptyPath,
		},
		{
			name:    "空字节",
			path:    "logs/app\x00",
			wantErr: ErrNullByte,
		},
		{
			name:    "尾随分隔符",
			path:    "logs/app/",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "相对穿越",
			path:    "../outside",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "嵌在中间的穿越",
			path:    "logs/../../outside",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "反斜杠穿越",
			path:    `..\outside`,
			wantErr: ErrPathTraversal,
		},
		{
			name:    "纯当前目录",
			path:    ".",
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// SafeJoin
// =============================================================================

func TestSafeJoin(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		join    string
		want    string
		wantErr error
	}{
		{
			name: "常规拼接",
			base: "/var/log/app",
			join: "log_000001.txt",
			want: "/var/log/app/log_000001.txt",
		},
		{
			name: "相对基准目录",
			base: "logs",
			join: "log_000001.txt",
			want: filepath.Join("logs", "log_000001.txt"),
		},
		{
			name:    "空基准目录",
			base:    "",
			join:    "a.txt",
			wantErr: ErrEmptyPath,
		},
		{
			name:    "空名字",
			base:    "/var/log",
			join:    "",
			wantErr: ErrEmptyPath,
		},
		{
			name:    "绝对路径名字",
			base:    "/var/log",
			join:    "/etc/passwd",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "Windows 驱动器路径",
			base:    "/var/log",
			join:    `C:\Windows\system32`,
			wantErr: ErrInvalidPath,
		},
		{
			name:    "UNC 路径",
			base:    "/var/log",
			join:    `\\server\share`,
			wantErr: ErrInvalidPath,
		},
		{
			name:    "相对穿越",
			base:    "/var/log",
			join:    "../secrets",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "深层穿越",
			base:    "/var/log",
			join:    "sub/../../secrets",
			wantErr: ErrPathTraversal,
		},
		{
			name:    "名字含空字节",
			base:    "/var/log",
			join:    "a\x00.txt",
			wantErr: ErrNullByte,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeJoin(tt.base, tt.join)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// 内部辅助
// =============================================================================

func TestHasDotDotSegment(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"..", true},
		{"../a", true},
		{"a/../b", true},
		{`a\..\b`, true},
		{"a..b", false},
		{"app..2024.log", false},
		{"...", false},
		{"", false},
		{"a/b/c", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hasDotDotSegment(tt.path), "path=%q", tt.path)
	}
}

func TestIsWindowsAbsPath(t *testing.T) {
	assert.True(t, isWindowsAbsPath(`C:\Windows`))
	assert.True(t, isWindowsAbsPath(`c:relative`))
	assert.True(t, isWindowsAbsPath(`\\server\share`))
	assert.True(t, isWindowsAbsPath(`\root`))
	assert.False(t, isWindowsAbsPath("relative/path"))
	assert.False(t, isWindowsAbsPath("1:23"))
}
