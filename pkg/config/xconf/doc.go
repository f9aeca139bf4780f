// Package xconf 提供 xtail Sink 配置的加载与监视。
//
// 使用 koanf 从 YAML/JSON 文件或原始字节加载 [SinkFile]，再转换为
// xtail 的构造选项。配置键既可以放在顶层，也可以收在 "xtail" 键下
// （嵌入到更大的应用配置文件里时）。
//
// 示例配置（YAML）：
//
//	xtail:
//	  dir: /var/log/myapp
//	  prefix: app_
//	  flush_threshold: 4096
//	  storage_budget: 1048576
//	  fail_fast: false
//	  template: "{level}:{date} {time}\n>{message}"
//	  cache_size: 64
//	  cache_ttl: 1m
//
// 加载后一步构建：
//
//	sf, err := xconf.Load("/etc/myapp/log.yaml")
//	if err != nil { ... }
//	sink, err := sf.Build()
//
// Watch 基于 fsnotify 监视配置文件变更（带防抖），在回调中收到重新
// 加载后的 SinkFile。Sink 的配置构造后不可变：热更新语义由调用方决定，
// 通常是用新配置构建新 Sink 并替换旧实例。
package xconf
