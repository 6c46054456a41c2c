package hotelweather

import (
	"context"
	"math"
	"sort"
)

// Hotel represents a single hotel listing.
type Hotel struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate returns an error if the hotel contains invalid fields.
func (h *Hotel) Validate() error {
	if h.Name == "" {
		return Errorf(EINVALID, "hotel name required")
	}
	if h.Country == "" {
		return Errorf(EINVALID, "hotel country required")
	}
	if h.City == "" {
		return Errorf(EINVALID, "hotel city required")
	}
	if math.Abs(h.Latitude) > 90 {
		return Errorf(EINVALID, "hotel latitude out of range")
	}
	if math.Abs(h.Longitude) > 180 {
		return Errorf(EINVALID, "hotel longitude out of range")
	}
	return nil
}

// HotelSource loads hotel listings.
// Implementations hide archive extraction and row cleaning.
type HotelSource interface {
	Load(ctx context.Context) ([]Hotel, error)
}

// CityKey identifies a city within a country.
type CityKey struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// Less orders city keys by country, then city.
func (k CityKey) Less(other CityKey) bool {
	if k.Country != other.Country {
		return k.Country < other.Country
	}
	return k.City < other.City
}

// MostHotelsByCountry returns, for each country present in the listings, the
// city with the most hotels. Ties are broken by the lexicographically
// smallest city name. The result is sorted by country.
func MostHotelsByCountry(hotels []Hotel) []CityKey {
	counts := make(map[string]map[string]int)
	for _, h := range hotels {
		cities, ok := counts[h.Country]
		if !ok {
			cities = make(map[string]int)
			counts[h.Country] = cities
		}
		cities[h.City]++
	}

	keys := make([]CityKey, 0, len(counts))
	for country, cities := range counts {
		var best string
		var bestCount int
		for city, n := range cities {
			if n > bestCount || (n == bestCount && city < best) {
				best, bestCount = city, n
			}
		}
		keys = append(keys, CityKey{Country: country, City: best})
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// FilterCity returns the hotels located in the given city, preserving input
// order.
func FilterCity(hotels []Hotel, key CityKey) []Hotel {
	var out []Hotel
	for _, h := range hotels {
		if h.Country == key.Country && h.City == key.City {
			out = append(out, h)
		}
	}
	return out
}

// CenterOf returns the midpoint of the bounding box around the hotels'
// coordinates. It is the representative coordinate weather is fetched for.
func CenterOf(hotels []Hotel) (lat, lon float64) {
	if len(hotels) == 0 {
		return 0, 0
	}
	minLat, maxLat := hotels[0].Latitude, hotels[0].Latitude
	minLon, maxLon := hotels[0].Longitude, hotels[0].Longitude
	for _, h := range hotels[1:] {
		minLat = math.Min(minLat, h.Latitude)
		maxLat = math.Max(maxLat, h.Latitude)
		minLon = math.Min(minLon, h.Longitude)
		maxLon = math.Max(maxLon, h.Longitude)
	}
	return (minLat + maxLat) / 2, (minLon + maxLon) / 2
}
