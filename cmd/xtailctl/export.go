package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/cespare/xxhash/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xtail/pkg/observability/xtail"
	"github.com/omeyang/xtail/pkg/util/xfile"
)

// 导出复制的重试参数。
const (
	exportAttempts   = 3
	exportRetryDelay = 50 * time.Millisecond
)

// createExportCommand 创建 export 子命令。
func createExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "将日志文件导出到目标目录（xxhash 校验和验证）",
		ArgsUsage: "<目标目录>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "并发复制任务数",
				Value:   int64(defaultExportJobs()),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := resolveDir(cmd)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 1 {
				return &usageError{msg: "export 需要且仅需要一个目标目录参数"}
			}
			dst, err := xfile.SanitizePath(cmd.Args().First())
			if err != nil {
				return &usageError{msg: fmt.Sprintf("无效的目标目录: %v", err)}
			}
			jobs := cmd.Int("jobs")
			if jobs < 1 {
				return &usageError{msg: "--jobs 必须为正数"}
			}

			files, err := xtail.ListFiles(dir, cmd.String("prefix"))
			if err != nil {
				return fmt.Errorf("列目录失败: %w", err)
			}
			if len(files) == 0 {
				fmt.Println("无可导出的文件")
				return nil
			}
			if err := xfile.EnsureDir(dst); err != nil {
				return fmt.Errorf("创建目标目录失败: %w", err)
			}

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(int(jobs))
			for _, f := range files {
				f := f
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					return exportFile(dir, dst, f.Name)
				})
			}
			if err := g.Wait(); err != nil {
				return fmt.Errorf("导出失败: %w", err)
			}
			fmt.Printf("已导出 %d 个文件到 %s\n", len(files), dst)
			return nil
		},
	}
}

// exportFile 复制单个日志文件并用 xxhash64 验证内容完整性。
// 复制使用原子写，目标目录中不会出现半写文件。
func exportFile(srcDir, dstDir, name string) error {
	srcPath, err := xfile.SafeJoin(srcDir, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	dstPath, err := xfile.SafeJoin(dstDir, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	var data []byte
	err = retry.New(
		retry.Attempts(exportAttempts),
		retry.Delay(exportRetryDelay),
		retry.LastErrorOnly(true),
	).Do(func() error {
		var readErr error
		data, readErr = os.ReadFile(srcPath)
		return readErr
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// 文件在导出期间被预算清理，跳过
			return nil
		}
		return fmt.Errorf("读取 %s: %w", name, err)
	}
	want := xxhash.Sum64(data)

	if err := xfile.WriteFileAtomic(dstPath, data, 0o600); err != nil {
		return fmt.Errorf("写入 %s: %w", name, err)
	}

	// 回读验证
	got, err := os.ReadFile(dstPath)
	if err != nil {
		return fmt.Errorf("回读 %s: %w", name, err)
	}
	if xxhash.Sum64(got) != want {
		return fmt.Errorf("校验 %s: 目标文件内容与源不一致", name)
	}
	return nil
}
