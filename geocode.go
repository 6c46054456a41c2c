package hotelweather

import "context"

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves coordinates to human-readable addresses.
type Geocoder interface {
	// ReverseAll returns one address per input coordinate, in input order.
	// Repeated coordinates are resolved independently.
	ReverseAll(ctx context.Context, coords []Coordinate) ([]string, error)
}
