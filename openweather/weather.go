// Package openweather implements hotelweather.WeatherService on top of the
// OpenWeather One Call API. Each city costs six requests: one current/forecast
// call and five single-day history calls, all submitted as one flat batch.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/AndKraev/hotelweather"
)

const (
	defaultForecastURL = "https://api.openweathermap.org/data/2.5/onecall"
	defaultHistoryURL  = "https://api.openweathermap.org/data/2.5/onecall/timemachine"

	// forecastDays day samples come from the forecast call, historyDays more
	// from one history call per preceding day.
	forecastDays = 6
	historyDays  = 5

	secondsPerDay = 86400
)

// Ensure Service implements hotelweather.WeatherService at compile time.
var _ hotelweather.WeatherService = (*Service)(nil)

// Service fetches multi-day temperature ranges from OpenWeather.
type Service struct {
	fetcher     hotelweather.BatchFetcher
	apiKey      string
	forecastURL string
	historyURL  string
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithBaseURLs overrides the API endpoints. Useful for tests and proxies.
func WithBaseURLs(forecast, history string) Option {
	return func(s *Service) {
		s.forecastURL = forecast
		s.historyURL = history
	}
}

// WithNow replaces the clock used to anchor history timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service issuing requests through fetcher.
func NewService(fetcher hotelweather.BatchFetcher, apiKey string, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		apiKey:      apiKey,
		forecastURL: defaultForecastURL,
		historyURL:  defaultHistoryURL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TemperatureRanges fetches 11 day samples per location: 6 forecast days and
// 5 history days, sorted by timestamp ascending.
func (s *Service) TemperatureRanges(ctx context.Context, locations []hotelweather.CityLocation) ([]hotelweather.CityWeather, error) {
	if s.apiKey == "" {
		return nil, hotelweather.Errorf(hotelweather.EINVALID, "openweather API key required")
	}

	now := s.now().Unix()

	reqs := make([]hotelweather.Request, 0, len(locations)*(1+historyDays))
	for _, loc := range locations {
		reqs = append(reqs, hotelweather.Request{
			Key:    forecastKey(loc),
			URL:    s.buildForecastURL(loc),
			Decode: hotelweather.DecodeJSON,
		})
		for day := 1; day <= historyDays; day++ {
			reqs = append(reqs, hotelweather.Request{
				Key:    historyKey(loc, day),
				URL:    s.buildHistoryURL(loc, now-int64(day)*secondsPerDay),
				Decode: hotelweather.DecodeJSON,
			})
		}
	}

	table, err := s.fetcher.FetchAll(ctx, reqs)
	if err != nil {
		return nil, err
	}

	out := make([]hotelweather.CityWeather, 0, len(locations))
	for _, loc := range locations {
		cw, err := reduceCity(loc, table)
		if err != nil {
			return nil, err
		}
		out = append(out, cw)
	}
	return out, nil
}

func forecastKey(loc hotelweather.CityLocation) string {
	return fmt.Sprintf("%s/%s:forecast", loc.Country, loc.City)
}

func historyKey(loc hotelweather.CityLocation, day int) string {
	return fmt.Sprintf("%s/%s:history:%d", loc.Country, loc.City, day)
}

func (s *Service) buildForecastURL(loc hotelweather.CityLocation) string {
	values := url.Values{}
	values.Set("lat", formatCoord(loc.Latitude))
	values.Set("lon", formatCoord(loc.Longitude))
	values.Set("exclude", "hourly,minutely,alerts")
	values.Set("units", "metric")
	values.Set("appid", s.apiKey)
	return fmt.Sprintf("%s?%s", s.forecastURL, values.Encode())
}

func (s *Service) buildHistoryURL(loc hotelweather.CityLocation, dt int64) string {
	values := url.Values{}
	values.Set("lat", formatCoord(loc.Latitude))
	values.Set("lon", formatCoord(loc.Longitude))
	values.Set("dt", fmt.Sprintf("%d", dt))
	values.Set("units", "metric")
	values.Set("appid", s.apiKey)
	return fmt.Sprintf("%s?%s", s.historyURL, values.Encode())
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%g", v)
}

// reduceCity reshapes one city's six responses into sorted day samples.
func reduceCity(loc hotelweather.CityLocation, table hotelweather.ResultTable) (hotelweather.CityWeather, error) {
	cw := hotelweather.CityWeather{CityKey: loc.CityKey}

	body, err := lookup(table, forecastKey(loc), loc)
	if err != nil {
		return cw, err
	}
	days, err := parseForecast(body)
	if err != nil {
		return cw, weatherError(loc, err)
	}
	cw.Days = days

	for day := 1; day <= historyDays; day++ {
		body, err := lookup(table, historyKey(loc, day), loc)
		if err != nil {
			return cw, err
		}
		sample, err := parseHistory(body)
		if err != nil {
			return cw, weatherError(loc, err)
		}
		cw.Days = append(cw.Days, sample)
	}

	sort.Slice(cw.Days, func(i, j int) bool { return cw.Days[i].Timestamp < cw.Days[j].Timestamp })
	return cw, nil
}

func lookup(table hotelweather.ResultTable, key string, loc hotelweather.CityLocation) (string, error) {
	res, ok := table[key]
	if !ok {
		return "", weatherError(loc, fmt.Errorf("no result for %s", key))
	}
	if res.Err != nil {
		return "", weatherError(loc, res.Err)
	}
	return res.Body, nil
}

func weatherError(loc hotelweather.CityLocation, err error) error {
	return hotelweather.Errorf(hotelweather.EUNAVAILABLE, "weather for %s/%s: %v", loc.Country, loc.City, err)
}

func parseForecast(body string) ([]hotelweather.DaySample, error) {
	var payload struct {
		Daily []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Min float64 `json:"min"`
				Max float64 `json:"max"`
			} `json:"temp"`
		} `json:"daily"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, err
	}
	if len(payload.Daily) < forecastDays {
		return nil, fmt.Errorf("forecast returned %d days, want %d", len(payload.Daily), forecastDays)
	}

	days := make([]hotelweather.DaySample, 0, forecastDays)
	for _, d := range payload.Daily[:forecastDays] {
		days = append(days, hotelweather.DaySample{
			Timestamp: d.Dt,
			Min:       d.Temp.Min,
			Max:       d.Temp.Max,
		})
	}
	return days, nil
}

func parseHistory(body string) (hotelweather.DaySample, error) {
	var payload struct {
		Current struct {
			Dt int64 `json:"dt"`
		} `json:"current"`
		Hourly []struct {
			Temp float64 `json:"temp"`
		} `json:"hourly"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return hotelweather.DaySample{}, err
	}
	if len(payload.Hourly) == 0 {
		return hotelweather.DaySample{}, fmt.Errorf("history returned no hourly temperatures")
	}

	sample := hotelweather.DaySample{
		Timestamp: payload.Current.Dt,
		Min:       payload.Hourly[0].Temp,
		Max:       payload.Hourly[0].Temp,
	}
	for _, h := range payload.Hourly[1:] {
		if h.Temp < sample.Min {
			sample.Min = h.Temp
		}
		if h.Temp > sample.Max {
			sample.Max = h.Temp
		}
	}
	return sample, nil
}
