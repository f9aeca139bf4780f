package xtail

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/xtail"

	metricEntries      = "xtail.entries.total"
	metricEntryBytes   = "xtail.entries.bytes"
	metricFlushes      = "xtail.flushes.total"
	metricFlushBytes   = "xtail.flushes.bytes"
	metricEvictedFiles = "xtail.evicted.files"
	metricEvictedBytes = "xtail.evicted.bytes"
	metricPurgedFiles  = "xtail.purged.files"
	metricErrors       = "xtail.internal_errors.total"
)

// 落盘触发方式属性
var (
	triggerAuto   = attribute.String("trigger", "auto")
	triggerManual = attribute.String("trigger", "manual")
)

// sinkMetrics OTel 计数器集合
//
// MeterProvider 未配置时回落到全局 otel.GetMeterProvider()
// （默认 no-op），计量永远不会成为写入路径上的失败来源。
type sinkMetrics struct {
	entries      metric.Int64Counter
	entryBytes   metric.Int64Counter
	flushes      metric.Int64Counter
	flushBytes   metric.Int64Counter
	evictedFiles metric.Int64Counter
	evictedBytes metric.Int64Counter
	purgedFiles  metric.Int64Counter
	errs         metric.Int64Counter

	sinkAttr metric.MeasurementOption
}

func newSinkMetrics(provider metric.MeterProvider, sinkID string) (*sinkMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(instrumentationName)

	m := &sinkMetrics{
		sinkAttr: metric.WithAttributes(attribute.String("sink.id", sinkID)),
	}

	var err error
	if m.entries, err = meter.Int64Counter(metricEntries,
		metric.WithDescription("Log entries appended to the tail buffer")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricEntries, err)
	}
	if m.entryBytes, err = meter.Int64Counter(metricEntryBytes,
		metric.WithDescription("Formatted entry bytes appended"), metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricEntryBytes, err)
	}
	if m.flushes, err = meter.Int64Counter(metricFlushes,
		metric.WithDescription("Committed flushes by trigger")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricFlushes, err)
	}
	if m.flushBytes, err = meter.Int64Counter(metricFlushBytes,
		metric.WithDescription("Bytes committed to log files"), metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricFlushBytes, err)
	}
	if m.evictedFiles, err = meter.Int64Counter(metricEvictedFiles,
		metric.WithDescription("Log files evicted by the storage limiter")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricEvictedFiles, err)
	}
	if m.evictedBytes, err = meter.Int64Counter(metricEvictedBytes,
		metric.WithDescription("Bytes reclaimed by the storage limiter"), metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricEvictedBytes, err)
	}
	if m.purgedFiles, err = meter.Int64Counter(metricPurgedFiles,
		metric.WithDescription("Log files removed by explicit purge")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricPurgedFiles, err)
	}
	if m.errs, err = meter.Int64Counter(metricErrors,
		metric.WithDescription("Internal errors reported through the error callback")); err != nil {
		return nil, fmt.Errorf("xtail: create counter %s: %w", metricErrors, err)
	}
	return m, nil
}

func (m *sinkMetrics) addEntry(bytes int64) {
	ctx := context.Background()
	m.entries.Add(ctx, 1, m.sinkAttr)
	m.entryBytes.Add(ctx, bytes, m.sinkAttr)
}

func (m *sinkMetrics) addFlush(manual bool, bytes int64) {
	ctx := context.Background()
	trigger := triggerAuto
	if manual {
		trigger = triggerManual
	}
	m.flushes.Add(ctx, 1, m.sinkAttr, metric.WithAttributes(trigger))
	m.flushBytes.Add(ctx, bytes, m.sinkAttr)
}

func (m *sinkMetrics) addEviction(bytes int64) {
	ctx := context.Background()
	m.evictedFiles.Add(ctx, 1, m.sinkAttr)
	m.evictedBytes.Add(ctx, bytes, m.sinkAttr)
}

func (m *sinkMetrics) addPurge() {
	m.purgedFiles.Add(context.Background(), 1, m.sinkAttr)
}

func (m *sinkMetrics) addInternalError() {
	m.errs.Add(context.Background(), 1, m.sinkAttr)
}
