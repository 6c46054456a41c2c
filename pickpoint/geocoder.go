// Package pickpoint implements hotelweather.Geocoder on top of the PickPoint
// reverse-geocoding API: one request per coordinate, results in input order.
package pickpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/AndKraev/hotelweather"
)

const defaultBaseURL = "https://api.pickpoint.io/v1/reverse/"

// Ensure Geocoder implements hotelweather.Geocoder at compile time.
var _ hotelweather.Geocoder = (*Geocoder)(nil)

// Geocoder resolves coordinates to addresses through a batch fetcher.
type Geocoder struct {
	fetcher hotelweather.BatchFetcher
	apiKey  string
	baseURL string
}

// Option configures a Geocoder.
type Option func(*Geocoder)

// WithBaseURL overrides the API endpoint. Useful for tests and proxies.
func WithBaseURL(base string) Option {
	return func(g *Geocoder) {
		g.baseURL = base
	}
}

// NewGeocoder creates a Geocoder issuing requests through fetcher.
func NewGeocoder(fetcher hotelweather.BatchFetcher, apiKey string, opts ...Option) *Geocoder {
	g := &Geocoder{
		fetcher: fetcher,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ReverseAll resolves every coordinate to its display address, in input
// order. Requests are keyed by input position so repeated coordinates get
// independent result slots.
func (g *Geocoder) ReverseAll(ctx context.Context, coords []hotelweather.Coordinate) ([]string, error) {
	if g.apiKey == "" {
		return nil, hotelweather.Errorf(hotelweather.EINVALID, "pickpoint API key required")
	}

	reqs := make([]hotelweather.Request, 0, len(coords))
	for i, c := range coords {
		reqs = append(reqs, hotelweather.Request{
			Key:    strconv.Itoa(i),
			URL:    g.buildURL(c),
			Decode: hotelweather.DecodeJSON,
		})
	}

	table, err := g.fetcher.FetchAll(ctx, reqs)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, len(coords))
	for i, c := range coords {
		res, ok := table[strconv.Itoa(i)]
		if !ok || res.Err != nil {
			err := res.Err
			if !ok {
				err = fmt.Errorf("no result for coordinate %d", i)
			}
			return nil, hotelweather.Errorf(hotelweather.EUNAVAILABLE,
				"reverse geocode for %.5f,%.5f: %v", c.Latitude, c.Longitude, err)
		}

		var payload struct {
			DisplayName string `json:"display_name"`
		}
		if err := json.Unmarshal([]byte(res.Body), &payload); err != nil {
			return nil, hotelweather.Errorf(hotelweather.EUNAVAILABLE,
				"reverse geocode for %.5f,%.5f: %v", c.Latitude, c.Longitude, err)
		}
		addresses[i] = payload.DisplayName
	}

	return addresses, nil
}

func (g *Geocoder) buildURL(c hotelweather.Coordinate) string {
	values := url.Values{}
	values.Set("key", g.apiKey)
	values.Set("lat", fmt.Sprintf("%g", c.Latitude))
	values.Set("lon", fmt.Sprintf("%g", c.Longitude))
	values.Set("accept-language", "en-US")
	return fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
}
