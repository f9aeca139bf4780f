// Package xrotate 提供日志轮转器抽象。
//
// Rotator 接口定义了轮转器的核心行为（Write/Close/Rotate），所有实现并发安全，
// 且都是 [io.WriteCloser] 的超集，可直接用于任何接受 io.Writer 的场景
// （如 log.SetOutput 或 slog Handler 的输出目标）。
//
// # 当前实现
//
//   - [NewLumberjack]: 基于 lumberjack v2 的单文件滚动轮转（按大小/备份数/天数）
//   - [NewTail]: 基于 [xtail.Sink] 的编号文件轮转（按缓冲阈值落盘、存储预算淘汰）
//
// 两种实现面向不同的消费模式：lumberjack 维护一个固定名字的活动文件加
// 时间戳备份，适合 tail -f 式的运维习惯；xtail 产出只追加的编号文件序列，
// 适合程序化的枚举/导出/清理。
//
// # 扩展新实现
//
//  1. 创建新文件实现 Rotator 接口
//  2. 定义独立的构造函数与选项
//  3. 不修改 Rotator 接口
package xrotate
