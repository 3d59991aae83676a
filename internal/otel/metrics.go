package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tmux-sessionizer"

// Metrics holds all OTEL metric instruments for tmux-sessionizer.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// tmux invocations (partitioned by subcommand + success)
	Commands metric.Int64Counter

	// Candidates handed to the picker (partitioned by origin: config, orphan)
	Candidates metric.Int64Counter

	// Live sessions observed in the listing
	LiveSessions metric.Int64Counter

	// Picker outcomes (selected, cancelled)
	Selections metric.Int64Counter

	// Preview cache counters
	PreviewCacheHits   metric.Int64Counter
	PreviewCacheMisses metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Commands, err = meter.Int64Counter("tmux.commands",
		metric.WithDescription("Number of tmux subcommands executed"),
		metric.WithUnit("{command}"))
	if err != nil {
		return nil, err
	}

	m.Candidates, err = meter.Int64Counter("candidates.total",
		metric.WithDescription("Number of candidates offered for selection, partitioned by origin"),
		metric.WithUnit("{candidate}"))
	if err != nil {
		return nil, err
	}

	m.LiveSessions, err = meter.Int64Counter("sessions.live",
		metric.WithDescription("Number of live sessions reported by tmux"),
		metric.WithUnit("{session}"))
	if err != nil {
		return nil, err
	}

	m.Selections, err = meter.Int64Counter("selections.total",
		metric.WithDescription("Picker outcomes partitioned by result (selected, cancelled)"))
	if err != nil {
		return nil, err
	}

	m.PreviewCacheHits, err = meter.Int64Counter("preview_cache.hits",
		metric.WithDescription("Preview renders served from cache"))
	if err != nil {
		return nil, err
	}

	m.PreviewCacheMisses, err = meter.Int64Counter("preview_cache.misses",
		metric.WithDescription("Preview renders that ran the preview command"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordCommand records one tmux invocation.
func (m *Metrics) RecordCommand(ctx context.Context, subcommand string, success bool) {
	if m == nil {
		return
	}
	m.Commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tmux.subcommand", subcommand),
		attribute.Bool("tmux.success", success),
	))
}

// RecordCandidates records the number of candidates built from config and
// synthesized from orphan sessions.
func (m *Metrics) RecordCandidates(ctx context.Context, fromConfig, orphans int) {
	if m == nil {
		return
	}
	m.Candidates.Add(ctx, int64(fromConfig), metric.WithAttributes(attribute.String("candidate.origin", "config")))
	m.Candidates.Add(ctx, int64(orphans), metric.WithAttributes(attribute.String("candidate.origin", "orphan")))
}

// RecordLiveSessions records the size of a session listing.
func (m *Metrics) RecordLiveSessions(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.LiveSessions.Add(ctx, int64(n))
}

// RecordSelection records a picker outcome ("selected" or "cancelled").
func (m *Metrics) RecordSelection(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.Selections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("selection.outcome", outcome),
	))
}

// RecordPreviewCacheHit records a preview cache hit.
func (m *Metrics) RecordPreviewCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.PreviewCacheHits.Add(ctx, 1)
}

// RecordPreviewCacheMiss records a preview cache miss.
func (m *Metrics) RecordPreviewCacheMiss(ctx context.Context) {
	if m == nil {
		return
	}
	m.PreviewCacheMisses.Add(ctx, 1)
}
