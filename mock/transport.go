package mock

import (
	"context"

	"github.com/AndKraev/hotelweather"
)

var _ hotelweather.Transport = (*Transport)(nil)

type Transport struct {
	DoFn func(ctx context.Context, url string) (string, error)
}

func (t *Transport) Do(ctx context.Context, url string) (string, error) {
	return t.DoFn(ctx, url)
}
