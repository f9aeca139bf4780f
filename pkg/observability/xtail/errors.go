package xtail

import "errors"

// 配置校验错误
var (
	// ErrEmptyDir 目录路径为空
	ErrEmptyDir = errors.New("xtail: directory is required")

	// ErrInvalidPrefix 文件名前缀无效（为空或包含路径分隔符）
	ErrInvalidPrefix = errors.New("xtail: invalid prefix")

	// ErrInvalidThreshold FlushThreshold 值无效（必须 > 0）
	ErrInvalidThreshold = errors.New("xtail: invalid flush threshold")

	// ErrInvalidBudget StorageBudget 值无效（必须 >= 0）
	ErrInvalidBudget = errors.New("xtail: invalid storage budget")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xtail: invalid file mode")
)

// 运行时错误（对应初始化/枚举/写入/删除/解码五类故障）
var (
	// ErrDirUnavailable 目标目录无法创建或无法用于序号恢复（初始化失败）
	ErrDirUnavailable = errors.New("xtail: log directory unavailable")

	// ErrListDir 目录枚举失败（读取/清理/淘汰路径上的可恢复错误）
	ErrListDir = errors.New("xtail: cannot list log directory")

	// ErrWriteFile 落盘时原子文件写入失败（缓冲保持原样，序号不前进）
	ErrWriteFile = errors.New("xtail: flush write failed")

	// ErrDeleteFile 单个文件删除失败（淘汰/清理会跳过该文件继续）
	ErrDeleteFile = errors.New("xtail: delete log file failed")

	// ErrInvalidEncoding 文件内容不是合法 UTF-8（按文件上报，不影响整体读取）
	ErrInvalidEncoding = errors.New("xtail: log file is not valid UTF-8")

	// ErrInvalidName Purge 收到的文件名不符合命名约定或试图逃出日志目录
	ErrInvalidName = errors.New("xtail: invalid log file name")

	// ErrDisabled Sink 处于降级禁用状态（初始化软失败后所有操作空转）
	ErrDisabled = errors.New("xtail: sink is disabled")
)
