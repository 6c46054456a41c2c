// Package slog provides logging decorators for hotelweather services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/AndKraev/hotelweather"
)

// Ensure LoggingTransport implements hotelweather.Transport.
var _ hotelweather.Transport = (*LoggingTransport)(nil)

// LoggingTransport wraps a Transport with per-request logging.
type LoggingTransport struct {
	next   hotelweather.Transport
	logger *slog.Logger
}

// NewLoggingTransport creates a new LoggingTransport.
func NewLoggingTransport(next hotelweather.Transport, logger *slog.Logger) *LoggingTransport {
	return &LoggingTransport{next: next, logger: logger}
}

// Do delegates to the wrapped transport and logs the outcome.
func (t *LoggingTransport) Do(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	body, err := t.next.Do(ctx, url)

	if err != nil {
		t.logger.Error("request",
			"url", url,
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return "", err
	}

	t.logger.Debug("request",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(begin),
	)
	return body, nil
}
