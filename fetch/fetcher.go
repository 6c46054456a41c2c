// Package fetch provides a bounded-concurrency, rate-limited batch fetcher.
// A fixed pool of workers drains a shared request queue, each request is
// retried through a shared rate gate until it succeeds or exhausts its
// attempts, and every request resolves to exactly one entry in the returned
// result table.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AndKraev/hotelweather"
	"golang.org/x/sync/errgroup"
)

// Defaults applied when the corresponding Fetcher field is zero.
const (
	DefaultConcurrency = 10
	DefaultMaxAttempts = 10
	DefaultRetryDelay  = 1 * time.Second
)

// RateLimit caps the number of attempts issued per window.
type RateLimit struct {
	MaxRequests int
	Window      time.Duration
}

// Ensure Fetcher implements hotelweather.BatchFetcher at compile time.
var _ hotelweather.BatchFetcher = (*Fetcher)(nil)

// Fetcher resolves request batches against a Transport with a bounded worker
// pool. It holds configuration only; all per-batch state (queue, rate budget,
// result table) is scoped to one FetchAll call, so a Fetcher is safe for
// concurrent use.
type Fetcher struct {
	Transport hotelweather.Transport

	// Concurrency is the worker cap. The actual worker count never exceeds
	// the number of requests.
	Concurrency int

	// MaxAttempts is the retry ceiling per request.
	MaxAttempts int

	// RetryDelay is the wait between failed attempts.
	RetryDelay time.Duration

	// Rate, when set, throttles attempts across all workers.
	Rate *RateLimit

	// OnPause, when set, is called each time the rate gate pauses.
	OnPause func(d time.Duration)

	// Progress, when set, receives an event per completed request.
	Progress hotelweather.FetchProgressFunc
}

// keyed pairs a result with its table key while in flight.
type keyed struct {
	key string
	res hotelweather.Result
}

// FetchAll resolves every request to a terminal result. It returns only once
// the queue is drained and all workers have exited. A canceled context stops
// new attempts; requests not yet processed resolve to the context's error so
// the one-entry-per-request invariant holds.
func (f *Fetcher) FetchAll(ctx context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	table := make(hotelweather.ResultTable, len(reqs))
	if len(reqs) == 0 {
		return table, nil
	}

	workers := f.Concurrency
	if workers <= 0 {
		workers = DefaultConcurrency
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	maxAttempts := f.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	delay := f.RetryDelay
	if delay == 0 {
		delay = DefaultRetryDelay
	}

	// The rate budget lives and dies with this call.
	var gate *Gate
	if f.Rate != nil {
		var opts []GateOption
		if f.OnPause != nil {
			opts = append(opts, WithPauseHook(f.OnPause))
		}
		gate = NewGate(f.Rate.MaxRequests, f.Rate.Window, opts...)
	}

	queue := make(chan hotelweather.Request, len(reqs))
	for _, req := range reqs {
		queue <- req
	}
	close(queue)

	resultCh := make(chan keyed, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for req := range queue {
				resultCh <- keyed{
					key: req.ResultKey(),
					res: f.process(gctx, gate, req, maxAttempts, delay),
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	var completed int
	for e := range resultCh {
		completed++
		table[e.key] = e.res
		if f.Progress != nil {
			f.Progress(hotelweather.FetchProgress{
				Key:       e.key,
				Completed: completed,
				Total:     len(reqs),
				Err:       e.res.Err,
			})
		}
	}

	return table, nil
}

// process resolves a single request to a terminal result, including its own
// retries.
func (f *Fetcher) process(ctx context.Context, gate *Gate, req hotelweather.Request, maxAttempts int, delay time.Duration) hotelweather.Result {
	attempt := func(ctx context.Context, url string) (string, error) {
		body, err := f.Transport.Do(ctx, url)
		if err != nil {
			return "", err
		}
		if req.Decode == hotelweather.DecodeJSON && !json.Valid([]byte(body)) {
			return "", fmt.Errorf("response for %s is not valid JSON", req.ResultKey())
		}
		return body, nil
	}

	body, attempts, err := Retry(ctx, req.URL, maxAttempts, delay, gate, attempt)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = hotelweather.Errorf(hotelweather.EUNAVAILABLE,
				"request %s exhausted %d attempts: %v", req.ResultKey(), attempts, err)
		}
		return hotelweather.Result{Err: err, Attempts: attempts}
	}

	return hotelweather.Result{Body: body, Attempts: attempts}
}
