package main

import (
	"fmt"
	"sort"

	"github.com/AndKraev/hotelweather"
)

// Run executes the fetch command, resolving each URL through the shared
// fetcher stack and printing one line per result.
func (c *FetchCmd) Run(deps *Dependencies) error {
	reqs := make([]hotelweather.Request, len(c.URLs))
	for i, url := range c.URLs {
		reqs[i] = hotelweather.Request{URL: url}
	}

	table, err := deps.Fetcher.FetchAll(deps.Ctx, reqs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotelweather.ErrorMessage(err))
		return err
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	failures := 0
	for _, key := range keys {
		res := table[key]
		if res.Err != nil {
			failures++
			fmt.Fprintf(deps.Stdout, "FAIL  %s  attempts=%d  %s\n", key, res.Attempts, hotelweather.ErrorMessage(res.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "OK    %s  attempts=%d  bytes=%d\n", key, res.Attempts, len(res.Body))
	}

	if failures > 0 {
		return hotelweather.Errorf(hotelweather.EUNAVAILABLE, "%d of %d requests failed", failures, len(reqs))
	}
	return nil
}
