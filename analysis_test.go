package hotelweather_test

import (
	"testing"
	"time"

	"github.com/AndKraev/hotelweather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(ts int64, min, max float64) hotelweather.DaySample {
	return hotelweather.DaySample{Timestamp: ts, Min: min, Max: max}
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("selects extremes across cities", func(t *testing.T) {
		t.Parallel()

		weather := []hotelweather.CityWeather{
			{
				CityKey: hotelweather.CityKey{Country: "FR", City: "Paris"},
				Days: []hotelweather.DaySample{
					day(1000, 5, 15),
					day(2000, 8, 30), // hottest day overall
				},
			},
			{
				CityKey: hotelweather.CityKey{Country: "NO", City: "Oslo"},
				Days: []hotelweather.DaySample{
					day(1000, -20, 2), // coldest day overall, widest single-day spread
					day(2000, -5, 1),
				},
			},
		}

		report, err := hotelweather.Analyze(weather)
		require.NoError(t, err)

		assert.Equal(t, "Paris", report.HottestCity.City)
		assert.Equal(t, time.Unix(2000, 0).UTC(), report.HottestCity.Date)

		assert.Equal(t, "Oslo", report.ColdestCity.City)
		assert.Equal(t, time.Unix(1000, 0).UTC(), report.ColdestCity.Date)

		// Paris maxima spread 15, Oslo maxima spread 1.
		assert.Equal(t, "Paris", report.WidestMaxSpread.City)

		// Oslo's first day spans 22 degrees.
		assert.Equal(t, "Oslo", report.WidestDaySpread.City)
		assert.Equal(t, time.Unix(1000, 0).UTC(), report.WidestDaySpread.Date)
	})

	t.Run("breaks value ties lexicographically by country then city", func(t *testing.T) {
		t.Parallel()

		weather := []hotelweather.CityWeather{
			{
				CityKey: hotelweather.CityKey{Country: "US", City: "Boston"},
				Days:    []hotelweather.DaySample{day(1000, 0, 20)},
			},
			{
				CityKey: hotelweather.CityKey{Country: "CA", City: "Toronto"},
				Days:    []hotelweather.DaySample{day(2000, 0, 20)},
			},
		}

		report, err := hotelweather.Analyze(weather)
		require.NoError(t, err)
		assert.Equal(t, hotelweather.CityKey{Country: "CA", City: "Toronto"}, report.HottestCity.CityKey)
		assert.Equal(t, hotelweather.CityKey{Country: "CA", City: "Toronto"}, report.ColdestCity.CityKey)
		assert.Equal(t, hotelweather.CityKey{Country: "CA", City: "Toronto"}, report.WidestMaxSpread)
	})

	t.Run("prefers earliest date within a city on equal values", func(t *testing.T) {
		t.Parallel()

		weather := []hotelweather.CityWeather{
			{
				CityKey: hotelweather.CityKey{Country: "DE", City: "Berlin"},
				Days: []hotelweather.DaySample{
					day(1000, 1, 25),
					day(2000, 1, 25),
				},
			},
		}

		report, err := hotelweather.Analyze(weather)
		require.NoError(t, err)
		assert.Equal(t, time.Unix(1000, 0).UTC(), report.HottestCity.Date)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()
		_, err := hotelweather.Analyze(nil)
		require.Error(t, err)
		assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(err))
	})

	t.Run("rejects city with no day samples", func(t *testing.T) {
		t.Parallel()
		weather := []hotelweather.CityWeather{
			{CityKey: hotelweather.CityKey{Country: "ES", City: "Madrid"}},
		}
		_, err := hotelweather.Analyze(weather)
		require.Error(t, err)
		assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(err))
	})
}
