// Package xfile 提供 xtail 依赖的文件系统基础操作。
//
// # 路径安全函数对比
//
//   - SanitizePath: 检查路径格式，防止相对路径穿越，不限制目标目录
//   - SafeJoin: 确保结果路径始终在指定的 base 目录内，用于处理外部输入的文件名
//
// 路径穿越检测使用精确的路径段匹配：只有 ".." 作为独立路径段时才被
// 视为穿越，以 ".." 开头的合法文件名（如 "..config"）不会被误判。
// 两个函数都拒绝包含空字节（\x00）的路径：Linux 内核在 VFS 层会在
// 空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
//
// # 原子写入
//
// WriteFileAtomic 以"同目录临时文件 + rename"的方式整体替换文件内容，
// 并发读取方要么看到旧内容（不存在），要么看到完整的新内容，
// 永远不会看到写到一半的文件。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断。
package xfile
