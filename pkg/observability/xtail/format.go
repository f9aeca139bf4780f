package xtail

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// DefaultTemplate 默认行格式模板
//
// 渲染结果形如 "INFO:2024-05-01 12:00:00.000\n>message"。
// 条目本身可以包含换行：条目之间的分隔符由尾部缓冲负责，
// 读取方按序拼接文件内容即可还原完整写入序列。
const DefaultTemplate = "{level}:{date} {time}\n>{message}"

// 模板占位符
const (
	placeLevel   = "{level}"   // 级别大写名称
	placeDate    = "{date}"    // 2006-01-02
	placeTime    = "{time}"    // 15:04:05.000
	placeTZ      = "{tz}"      // ±07:00
	placeSource  = "{source}"  // 调用点 file:line
	placeMessage = "{message}" // 原始消息
)

// 时间占位符的渲染布局
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05.000"
	tzLayout   = "-07:00"
)

// entryFormat 预解析的行格式模板
//
// 构造时记录模板用到了哪些占位符，写入热路径上只渲染需要的部分；
// 尤其是 {source}，只有模板包含它时才付出 runtime.Caller 的代价。
type entryFormat struct {
	template   string
	hasDate    bool
	hasTime    bool
	hasTZ      bool
	hasSource  bool
	hasLevel   bool
	hasMessage bool
}

func newEntryFormat(template string) *entryFormat {
	if template == "" {
		template = DefaultTemplate
	}
	return &entryFormat{
		template:   template,
		hasDate:    strings.Contains(template, placeDate),
		hasTime:    strings.Contains(template, placeTime),
		hasTZ:      strings.Contains(template, placeTZ),
		hasSource:  strings.Contains(template, placeSource),
		hasLevel:   strings.Contains(template, placeLevel),
		hasMessage: strings.Contains(template, placeMessage),
	}
}

// render 渲染一条日志行
//
// 未知的 "{...}" 序列原样保留：模板属于调用方配置，
// 拼写错误应当在输出中可见，而不是被静默吞掉。
func (f *entryFormat) render(level Level, msg string, now time.Time, source string) string {
	pairs := make([]string, 0, 12)
	if f.hasLevel {
		pairs = append(pairs, placeLevel, level.String())
	}
	if f.hasDate {
		pairs = append(pairs, placeDate, now.Format(dateLayout))
	}
	if f.hasTime {
		pairs = append(pairs, placeTime, now.Format(timeLayout))
	}
	if f.hasTZ {
		pairs = append(pairs, placeTZ, now.Format(tzLayout))
	}
	if f.hasSource {
		pairs = append(pairs, placeSource, source)
	}
	if f.hasMessage {
		pairs = append(pairs, placeMessage, msg)
	}
	if len(pairs) == 0 {
		return f.template
	}
	return strings.NewReplacer(pairs...).Replace(f.template)
}

// callerSource 返回调用点的 "file:line"
//
// skip 语义与 runtime.Caller 一致。解析失败返回 "???:0"，
// 保证占位符总有确定输出。
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???:0"
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
