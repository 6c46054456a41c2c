package hotelweather

import (
	"context"
	"time"
)

// DecodeMode declares how a response body must decode before it is accepted.
type DecodeMode int

const (
	// DecodeText accepts any response body as-is.
	DecodeText DecodeMode = iota

	// DecodeJSON requires the response body to be valid JSON. A body that
	// fails to decode counts as a failed attempt and is retried.
	DecodeJSON
)

// Request describes a single URL to fetch as part of a batch.
type Request struct {
	// Key identifies the request's slot in the ResultTable. When empty the
	// URL is used. Callers that submit the same URL more than once and need
	// independent result slots must assign distinct keys.
	Key string

	// URL is the fully-formed target, built by the caller from coordinates,
	// API keys and query parameters.
	URL string

	// Decode declares how the response body must decode.
	Decode DecodeMode
}

// ResultKey returns the key under which this request's result is stored.
func (r Request) ResultKey() string {
	if r.Key != "" {
		return r.Key
	}
	return r.URL
}

// Validate returns an error if the request cannot be issued.
func (r Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "request URL required")
	}
	return nil
}

// Result is the terminal outcome of one request: either a response body or
// the error that exhausted its retries. Exactly one of Body and Err is
// meaningful.
type Result struct {
	Body     string
	Err      error
	Attempts int
}

// ResultTable maps each request's key to its terminal result. After a
// FetchAll call returns, every input request has exactly one entry; no
// request is silently dropped.
type ResultTable map[string]Result

// Transport issues a single HTTP GET and returns the response body.
// The context controls timeout and cancellation.
type Transport interface {
	Do(ctx context.Context, url string) (body string, err error)
}

// BatchFetcher resolves a batch of requests to a ResultTable, retrying
// transient failures and throttling against any configured quota. Completion
// order across requests is unspecified; the keyed table is the only contract.
type BatchFetcher interface {
	FetchAll(ctx context.Context, reqs []Request) (ResultTable, error)
}

// FetchProgress reports progress as requests reach a terminal state.
type FetchProgress struct {
	Key       string
	Completed int
	Total     int
	Err       error
}

// FetchProgressFunc is called as requests complete.
type FetchProgressFunc func(FetchProgress)

// ResponseCache stores fetched response bodies keyed by a caller-defined
// cache key. Implementations must treat lookup misses as (ok=false, nil).
type ResponseCache interface {
	Get(ctx context.Context, key string) (body string, ok bool, err error)
	Put(ctx context.Context, key, url, body string) error
}

// FetchRun summarizes one completed batch fetch for bookkeeping.
type FetchRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Requests   int       `json:"requests"`
	Failures   int       `json:"failures"`
}

// RunLog records completed fetch runs.
type RunLog interface {
	RecordRun(ctx context.Context, run *FetchRun) error
}
