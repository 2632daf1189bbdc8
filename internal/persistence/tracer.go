package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type traceKey struct{}

type traceStart struct {
	sql   string
	start time.Time
}

// QueryTracer logs failed queries and those slower than a threshold.
// pgx.ErrNoRows is not treated as a failure.
type QueryTracer struct {
	logger *zap.Logger
	slow   time.Duration
	now    func() time.Time
}

// NewQueryTracer builds a tracer. A zero slow threshold disables slow-query logging.
func NewQueryTracer(logger *zap.Logger, slow time.Duration) *QueryTracer {
	return &QueryTracer{logger: logger.Named("pgx"), slow: slow, now: time.Now}
}

// TraceQueryStart implements pgx.QueryTracer.
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{sql: data.SQL, start: t.now()})
}

// TraceQueryEnd implements pgx.QueryTracer.
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(started.start)

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows):
		t.logger.Warn("query failed",
			zap.String("sql", started.sql),
			zap.Duration("elapsed", elapsed),
			zap.Error(data.Err))
	case t.slow > 0 && elapsed >= t.slow:
		t.logger.Warn("slow query",
			zap.String("sql", started.sql),
			zap.Duration("elapsed", elapsed),
			zap.String("command", data.CommandTag.String()))
	}
}
