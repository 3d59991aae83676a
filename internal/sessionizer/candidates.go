package sessionizer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/timvw/tmux-sessionizer/internal/model"
	"github.com/timvw/tmux-sessionizer/internal/mux"
	telem "github.com/timvw/tmux-sessionizer/internal/otel"
)

var tracer = otel.Tracer("tmux-sessionizer")

// Builder produces the candidate list shown to the user: it lists live
// sessions, expands the entries, resolves previews, reconciles and ranks.
type Builder struct {
	Mux           mux.Multiplexer
	Entries       []model.Entry
	DefaultDir    model.WorkDir
	GlobalPreview *model.PreviewCommands // config file level, or the built-in default
	Override      *model.PreviewCommands // command-line level; nil if none
	Sort          bool
	Metrics       *telem.Metrics // nil-safe
	Logger        *zap.Logger
}

// Build returns the candidates in presentation order.
func (b *Builder) Build(ctx context.Context) ([]model.PromptItem, error) {
	ctx, span := tracer.Start(ctx, "build-candidates",
		trace.WithAttributes(
			attribute.Int("entries", len(b.Entries)),
			attribute.Bool("sort", b.Sort),
		))
	defer span.End()

	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions, err := b.Mux.ListSessions(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	b.Metrics.RecordLiveSessions(ctx, len(sessions))

	items, err := Expand(b.Entries)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("expanding entries: %w", err)
	}
	ApplyPreviews(items, b.GlobalPreview, b.Override)

	live := len(sessions)
	out := Reconcile(items, sessions, b.DefaultDir)
	orphans := len(sessions)
	b.Metrics.RecordCandidates(ctx, len(out)-orphans, orphans)

	if b.Sort {
		Rank(out)
	}

	span.SetAttributes(
		attribute.Int("sessions.live", live),
		attribute.Int("candidates", len(out)),
		attribute.Int("candidates.orphan", orphans),
	)
	logger.Debug("built candidates",
		zap.Int("live", live),
		zap.Int("candidates", len(out)),
		zap.Int("orphans", orphans))
	return out, nil
}

// Find returns the candidate named name.
func Find(items []model.PromptItem, name string) (model.PromptItem, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return model.PromptItem{}, false
}
