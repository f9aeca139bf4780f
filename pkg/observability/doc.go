// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xtail: 缓冲日志落盘器，编号文件序列、存储预算与读取接口
//   - xrotate: 日志文件轮转
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 写入路径永不因落盘故障向调用方返回错误
//   - 统一的 io.Writer 适配，便于挂接既有日志框架
package observability
