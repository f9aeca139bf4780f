package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xtail/pkg/observability/xtail"
	"github.com/omeyang/xtail/pkg/util/xfile"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createLsCommand(),
		createCatCommand(),
		createExportCommand(),
		createPurgeCommand(),
		createFollowCommand(),
	}
}

// resolveDir 从全局 flag 提取并校验日志目录。
func resolveDir(cmd *cli.Command) (string, error) {
	dir := cmd.String("dir")
	if dir == "" {
		return "", &usageError{msg: "必须通过 --dir 指定日志目录"}
	}
	clean, err := xfile.SanitizePath(dir)
	if err != nil {
		return "", &usageError{msg: fmt.Sprintf("无效的目录路径 %q: %v", dir, err)}
	}
	return clean, nil
}

// createLsCommand 创建 ls 子命令。
func createLsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "列出已提交的日志文件",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "sum",
				Usage: "同时计算每个文件的 xxhash64 校验和",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, err := resolveDir(cmd)
			if err != nil {
				return err
			}
			files, err := xtail.ListFiles(dir, cmd.String("prefix"))
			if err != nil {
				return fmt.Errorf("列目录失败: %w", err)
			}
			withSum := cmd.Bool("sum")

			var total int64
			for _, f := range files {
				if withSum {
					sum, err := hashFile(dir, f.Name)
					if err != nil {
						// 文件可能在列目录与读取之间被清理，跳过并提示
						fmt.Fprintf(os.Stderr, "警告: 读取 %s 失败: %v\n", f.Name, err)
						continue
					}
					fmt.Printf("%s\t%d\t%016x\n", f.Name, f.Size, sum)
				} else {
					fmt.Printf("%s\t%d\n", f.Name, f.Size)
				}
				total += f.Size
			}
			fmt.Printf("共 %d 个文件, %d 字节\n", len(files), total)
			return nil
		},
	}
}

// hashFile 计算单个文件的 xxhash64 校验和。
func hashFile(dir, name string) (uint64, error) {
	path, err := xfile.SafeJoin(dir, name)
	if err != nil {
		return 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// createCatCommand 创建 cat 子命令。
func createCatCommand() *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "输出日志文件内容（省略参数则按序号输出全部）",
		ArgsUsage: "[文件名...]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, err := resolveDir(cmd)
			if err != nil {
				return err
			}
			prefix := cmd.String("prefix")

			names := cmd.Args().Slice()
			if len(names) == 0 {
				files, err := xtail.ListFiles(dir, prefix)
				if err != nil {
					return fmt.Errorf("列目录失败: %w", err)
				}
				for _, f := range files {
					names = append(names, f.Name)
				}
			}

			failed := false
			for _, name := range names {
				path, err := xfile.SafeJoin(dir, name)
				if err != nil {
					return &usageError{msg: fmt.Sprintf("无效的文件名 %q: %v", name, err)}
				}
				data, err := os.ReadFile(path)
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						// 文件可能在命令执行期间被预算清理，视为空内容
						continue
					}
					fmt.Fprintf(os.Stderr, "错误: 读取 %s 失败: %v\n", name, err)
					failed = true
					continue
				}
				os.Stdout.Write(data)
			}
			if failed {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// createPurgeCommand 创建 purge 子命令。
func createPurgeCommand() *cli.Command {
	return &cli.Command{
		Name:      "purge",
		Usage:     "删除日志文件",
		ArgsUsage: "[文件名...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "删除目录下全部匹配前缀的日志文件",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, err := resolveDir(cmd)
			if err != nil {
				return err
			}
			prefix := cmd.String("prefix")

			names := cmd.Args().Slice()
			// 设计决策: 不带参数且未显式指定 --all 时拒绝执行，
			// 避免误操作清空整个日志目录。
			if len(names) == 0 && !cmd.Bool("all") {
				return &usageError{msg: "purge 需要指定文件名，或使用 --all 删除全部"}
			}
			if len(names) > 0 && cmd.Bool("all") {
				return &usageError{msg: "--all 与文件名参数不能同时使用"}
			}

			if len(names) == 0 {
				files, err := xtail.ListFiles(dir, prefix)
				if err != nil {
					return fmt.Errorf("列目录失败: %w", err)
				}
				for _, f := range files {
					names = append(names, f.Name)
				}
			}

			failed := false
			removed := 0
			for _, name := range names {
				path, err := xfile.SafeJoin(dir, name)
				if err != nil {
					return &usageError{msg: fmt.Sprintf("无效的文件名 %q: %v", name, err)}
				}
				if err := os.Remove(path); err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						continue // 已不存在，视为成功
					}
					fmt.Fprintf(os.Stderr, "错误: 删除 %s 失败: %v\n", name, err)
					failed = true
					continue
				}
				removed++
			}
			fmt.Printf("已删除 %d 个文件\n", removed)
			if failed {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// defaultExportJobs 导出命令的默认并发度。
func defaultExportJobs() int {
	n := runtime.GOMAXPROCS(0)
	if n > 8 {
		n = 8
	}
	return n
}
