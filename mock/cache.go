package mock

import (
	"context"

	"github.com/AndKraev/hotelweather"
)

var _ hotelweather.ResponseCache = (*ResponseCache)(nil)

// ResponseCache is a mock implementation of hotelweather.ResponseCache.
type ResponseCache struct {
	GetFn func(ctx context.Context, key string) (string, bool, error)
	PutFn func(ctx context.Context, key, url, body string) error
}

func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool, error) {
	return c.GetFn(ctx, key)
}

func (c *ResponseCache) Put(ctx context.Context, key, url, body string) error {
	return c.PutFn(ctx, key, url, body)
}
