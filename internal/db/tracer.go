package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"retroboard/pkg/metrics"
)

type queryStartKey struct{}
type querySQLKey struct{}

// QueryTracer records per-query latency metrics and warns on slow queries.
type QueryTracer struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

func NewQueryTracer(logger *zap.Logger, slowThreshold time.Duration) *QueryTracer {
	if slowThreshold == 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &QueryTracer{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now())
	ctx = context.WithValue(ctx, querySQLKey{}, data.SQL)
	return ctx
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	startTime, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	duration := time.Since(startTime)

	sql, _ := ctx.Value(querySQLKey{}).(string)
	operation, table := classifyQuery(sql)
	metrics.RecordDBQueryDuration(operation, table, duration)

	if duration > t.slowThreshold {
		sqlTruncated := sql
		if len(sqlTruncated) > 200 {
			sqlTruncated = sqlTruncated[:200] + "..."
		}
		t.logger.Warn("slow-query",
			zap.String("sql", sqlTruncated),
			zap.Duration("took", duration),
			zap.String("command_tag", data.CommandTag.String()),
		)
	}
}

// classifyQuery derives coarse metric labels from the statement text.
// pgx v5's TraceQueryEndData carries no SQL, so the tracer keeps it in
// the context between the start and end hooks.
func classifyQuery(sql string) (operation, table string) {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown", "unknown"
	}
	operation = strings.ToLower(fields[0])

	var anchor string
	switch operation {
	case "select", "delete":
		anchor = "from"
	case "insert":
		anchor = "into"
	case "update":
		if len(fields) > 1 {
			return operation, strings.ToLower(fields[1])
		}
		return operation, "unknown"
	default:
		return operation, "unknown"
	}

	for i, f := range fields {
		if strings.EqualFold(f, anchor) && i+1 < len(fields) {
			return operation, strings.ToLower(fields[i+1])
		}
	}
	return operation, "unknown"
}
