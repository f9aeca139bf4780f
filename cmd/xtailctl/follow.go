package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xtail/pkg/observability/xtail"
	"github.com/omeyang/xtail/pkg/util/xfile"
)

// createFollowCommand 创建 follow 子命令。
func createFollowCommand() *cli.Command {
	return &cli.Command{
		Name:  "follow",
		Usage: "监视目录，实时打印新提交的日志文件内容",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := resolveDir(cmd)
			if err != nil {
				return err
			}
			return followDir(ctx, dir, cmd.String("prefix"))
		},
	}
}

// followDir 阻塞监视日志目录，新文件提交后输出其内容。
// 文件一经提交即不再改写，因此每个文件只输出一次。
// 设计决策: 先启动 watcher 再做初始扫描，避免扫描与事件之间的窗口漏报；
// seen 集合保证窗口期重复出现的文件不会输出两次。
func followDir(ctx context.Context, dir, prefix string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建监视器失败: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("监视目录失败: %w", err)
	}

	seen := make(map[string]struct{})

	// 初始扫描: 已存在的文件记为已见，不重复输出
	files, err := xtail.ListFiles(dir, prefix)
	if err != nil {
		return fmt.Errorf("列目录失败: %w", err)
	}
	for _, f := range files {
		seen[f.Name] = struct{}{}
	}
	fmt.Fprintf(os.Stderr, "监视 %s (前缀 %s)，Ctrl+C 退出\n", dir, prefix)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// 提交通过原子改名完成，Create 事件即代表文件落盘完毕
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if _, dup := seen[name]; dup {
				continue
			}
			if !xtail.MatchesName(name, prefix) {
				continue
			}
			seen[name] = struct{}{}
			if err := printFile(dir, name); err != nil {
				fmt.Fprintf(os.Stderr, "警告: 读取 %s 失败: %v\n", name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "警告: 监视错误: %v\n", err)
		}
	}
}

// printFile 输出单个日志文件内容，文件已消失视为无输出。
func printFile(dir, name string) error {
	path, err := xfile.SafeJoin(dir, name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	fmt.Printf("==> %s <==\n", name)
	os.Stdout.Write(data)
	return nil
}
