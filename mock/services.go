package mock

import (
	"context"

	"github.com/AndKraev/hotelweather"
)

var _ hotelweather.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of hotelweather.Geocoder.
type Geocoder struct {
	ReverseAllFn func(ctx context.Context, coords []hotelweather.Coordinate) ([]string, error)
}

func (g *Geocoder) ReverseAll(ctx context.Context, coords []hotelweather.Coordinate) ([]string, error) {
	return g.ReverseAllFn(ctx, coords)
}

var _ hotelweather.WeatherService = (*WeatherService)(nil)

// WeatherService is a mock implementation of hotelweather.WeatherService.
type WeatherService struct {
	TemperatureRangesFn func(ctx context.Context, locations []hotelweather.CityLocation) ([]hotelweather.CityWeather, error)
}

func (s *WeatherService) TemperatureRanges(ctx context.Context, locations []hotelweather.CityLocation) ([]hotelweather.CityWeather, error) {
	return s.TemperatureRangesFn(ctx, locations)
}

var _ hotelweather.HotelSource = (*HotelSource)(nil)

// HotelSource is a mock implementation of hotelweather.HotelSource.
type HotelSource struct {
	LoadFn func(ctx context.Context) ([]hotelweather.Hotel, error)
}

func (s *HotelSource) Load(ctx context.Context) ([]hotelweather.Hotel, error) {
	return s.LoadFn(ctx)
}

var _ hotelweather.RunLog = (*RunLog)(nil)

// RunLog is a mock implementation of hotelweather.RunLog.
type RunLog struct {
	RecordRunFn func(ctx context.Context, run *hotelweather.FetchRun) error
}

func (l *RunLog) RecordRun(ctx context.Context, run *hotelweather.FetchRun) error {
	return l.RecordRunFn(ctx, run)
}
