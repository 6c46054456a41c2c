package hotelweather

import "context"

// CityLocation names a city and the coordinate weather is fetched for.
type CityLocation struct {
	CityKey
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DaySample is one day's temperature range.
type DaySample struct {
	// Timestamp is the day's Unix time in seconds.
	Timestamp int64   `json:"timestamp"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// CityWeather holds a city's day samples, sorted by timestamp ascending.
type CityWeather struct {
	CityKey
	Days []DaySample `json:"days"`
}

// WeatherService fetches multi-day temperature ranges for city locations.
// Implementations hide provider URL construction and response reshaping.
type WeatherService interface {
	TemperatureRanges(ctx context.Context, locations []CityLocation) ([]CityWeather, error)
}
