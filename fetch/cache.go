package fetch

import (
	"context"
	"strconv"

	"github.com/AndKraev/hotelweather"
	"github.com/cespare/xxhash/v2"
)

// Ensure CachingFetcher implements hotelweather.BatchFetcher at compile time.
var _ hotelweather.BatchFetcher = (*CachingFetcher)(nil)

// CachingFetcher wraps a BatchFetcher with a lookup-before-fetch check and a
// persist-after-fetch write against a ResponseCache. Only successful results
// are persisted; cache write failures never fail the batch.
type CachingFetcher struct {
	next  hotelweather.BatchFetcher
	cache hotelweather.ResponseCache
}

// NewCachingFetcher creates a CachingFetcher around next.
func NewCachingFetcher(next hotelweather.BatchFetcher, cache hotelweather.ResponseCache) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache}
}

// CacheKey returns the cache key for a request: the xxHash of its URL, so
// repeated coordinates hit the same cache row regardless of result keys.
func CacheKey(req hotelweather.Request) string {
	return strconv.FormatUint(xxhash.Sum64String(req.URL), 16)
}

// FetchAll serves cached requests from the cache and delegates the rest.
func (f *CachingFetcher) FetchAll(ctx context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
	table := make(hotelweather.ResultTable, len(reqs))

	var missing []hotelweather.Request
	for _, req := range reqs {
		body, ok, err := f.cache.Get(ctx, CacheKey(req))
		if err == nil && ok {
			table[req.ResultKey()] = hotelweather.Result{Body: body}
			continue
		}
		missing = append(missing, req)
	}

	if len(missing) == 0 {
		return table, nil
	}

	fetched, err := f.next.FetchAll(ctx, missing)
	if err != nil {
		return nil, err
	}

	for _, req := range missing {
		res := fetched[req.ResultKey()]
		table[req.ResultKey()] = res
		if res.Err == nil {
			_ = f.cache.Put(ctx, CacheKey(req), req.URL, res.Body)
		}
	}

	return table, nil
}
