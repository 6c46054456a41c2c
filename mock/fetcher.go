package mock

import (
	"context"

	"github.com/AndKraev/hotelweather"
)

var _ hotelweather.BatchFetcher = (*BatchFetcher)(nil)

// BatchFetcher is a mock implementation of hotelweather.BatchFetcher.
type BatchFetcher struct {
	FetchAllFn func(ctx context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error)
}

func (f *BatchFetcher) FetchAll(ctx context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
	return f.FetchAllFn(ctx, reqs)
}
