package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"blogd/internal/app/errors"
	"blogd/internal/config/logger"
)

// QueryHook logs every statement bun executes
type QueryHook struct {
	log logger.Logger
}

// NewQueryHook creates a query hook writing to the DATABASE component logger
func NewQueryHook(log logger.Logger) *QueryHook {
	return &QueryHook{log: log.WithComponent("DATABASE")}
}

// BeforeQuery implements bun.QueryHook
func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook; missing rows are an expected outcome, not a failure
func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		h.log.Warn().Err(event.Err).Dur("elapsed", elapsed).Str("query", event.Query).Msg("Query failed")
		return
	}

	h.log.Debug().Dur("elapsed", elapsed).Str("query", event.Query).Msg("Query executed")
}

var _ bun.QueryHook = (*QueryHook)(nil)
