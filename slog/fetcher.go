package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/AndKraev/hotelweather"
)

// Ensure LoggingFetcher implements hotelweather.BatchFetcher.
var _ hotelweather.BatchFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a BatchFetcher with per-batch logging.
type LoggingFetcher struct {
	next   hotelweather.BatchFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next hotelweather.BatchFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchAll delegates to the wrapped fetcher and logs batch size, failure
// count, and duration.
func (f *LoggingFetcher) FetchAll(ctx context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
	begin := time.Now()
	table, err := f.next.FetchAll(ctx, reqs)

	if err != nil {
		f.logger.Error("batch fetch",
			"requests", len(reqs),
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return nil, err
	}

	failures := 0
	for _, res := range table {
		if res.Err != nil {
			failures++
		}
	}

	f.logger.Info("batch fetch",
		"requests", len(reqs),
		"failures", failures,
		"duration", time.Since(begin),
	)
	return table, nil
}
