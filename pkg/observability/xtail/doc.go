// Package xtail 提供进程内缓冲日志落盘功能：内存尾部缓冲、编号文件轮转、
// 存储预算淘汰，以及面向消费者的枚举/读取/清理操作。
//
// # 工作模型
//
// 多个 goroutine 并发调用写入方法（Debug/Info/Warn/Error/Fatal），
// 格式化后的日志行追加到内存尾部缓冲（Tail）。当缓冲字节数越过阈值时，
// 触发方在自己的调用栈上同步执行落盘（flush）：缓冲内容以原子整文件写
// 的方式写入下一个编号文件，随后序号计数器前进。没有后台调度器，
// 所有工作都在调用线程上完成，阈值因此是一个硬性的背压点。
//
// # 文件命名与序号恢复
//
// 文件名为 <prefix><6 位零填充序号>.txt，字典序即创建序。序号单调递增、
// 永不复用：构造时扫描目录取最大现存序号加一，跨进程重启依然成立。
//
// # 存储预算
//
// 配置 WithStorageBudget 后，每次成功落盘都会检查目录总字节数，
// 从最旧文件开始淘汰直到回到预算内。刚写入的文件在本轮淘汰中
// 永远不是候选。
//
// # 错误处理
//
// 写入调用永不返回错误：落盘失败时缓冲保持原样、序号不前进，
// 错误通过 WithOnError 回调上报（日志系统自身的失败必须可观测，
// 但不能打断业务写入路径）。消费者操作（GetLogs/Purge）返回可用
// [errors.Is] 判断的哨兵错误。
//
// 构造失败策略由 WithFailFast 控制：快速失败（New 返回错误）或降级
// （返回已禁用的 Sink，所有操作变为空操作并上报 [ErrDisabled]，
// 状态可通过 Disabled 查询）。
//
// # 并发约束
//
// 缓冲、序号计数器与目录变更由同一把互斥锁保护；落盘的判定与执行
// 在同一临界区内完成，不存在两个线程对同一份缓冲内容重复落盘的可能。
// 观察者回调在锁内执行，不得回调同一 Sink 的任何方法，否则死锁。
package xtail
