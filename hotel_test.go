package hotelweather_test

import (
	"testing"

	"github.com/AndKraev/hotelweather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotel_Validate(t *testing.T) {
	t.Parallel()

	valid := hotelweather.Hotel{
		Name:      "Grand Plaza",
		Country:   "FR",
		City:      "Paris",
		Latitude:  48.85,
		Longitude: 2.35,
	}

	t.Run("accepts valid hotel", func(t *testing.T) {
		t.Parallel()
		h := valid
		require.NoError(t, h.Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()
		for _, mutate := range []func(*hotelweather.Hotel){
			func(h *hotelweather.Hotel) { h.Name = "" },
			func(h *hotelweather.Hotel) { h.Country = "" },
			func(h *hotelweather.Hotel) { h.City = "" },
		} {
			h := valid
			mutate(&h)
			err := h.Validate()
			require.Error(t, err)
			assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(err))
		}
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		t.Parallel()
		h := valid
		h.Latitude = 90.5
		assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(h.Validate()))

		h = valid
		h.Longitude = -180.5
		assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(h.Validate()))
	})
}

func TestMostHotelsByCountry(t *testing.T) {
	t.Parallel()

	t.Run("picks the densest city per country", func(t *testing.T) {
		t.Parallel()

		hotels := []hotelweather.Hotel{
			{Name: "a", Country: "FR", City: "Paris"},
			{Name: "b", Country: "FR", City: "Paris"},
			{Name: "c", Country: "FR", City: "Lyon"},
			{Name: "d", Country: "US", City: "Austin"},
		}

		keys := hotelweather.MostHotelsByCountry(hotels)
		assert.Equal(t, []hotelweather.CityKey{
			{Country: "FR", City: "Paris"},
			{Country: "US", City: "Austin"},
		}, keys)
	})

	t.Run("breaks count ties by lexicographic city name", func(t *testing.T) {
		t.Parallel()

		hotels := []hotelweather.Hotel{
			{Name: "a", Country: "IT", City: "Rome"},
			{Name: "b", Country: "IT", City: "Milan"},
		}

		keys := hotelweather.MostHotelsByCountry(hotels)
		require.Len(t, keys, 1)
		assert.Equal(t, "Milan", keys[0].City)
	})

	t.Run("returns empty slice for no hotels", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, hotelweather.MostHotelsByCountry(nil))
	})
}

func TestFilterCity(t *testing.T) {
	t.Parallel()

	hotels := []hotelweather.Hotel{
		{Name: "a", Country: "FR", City: "Paris"},
		{Name: "b", Country: "FR", City: "Lyon"},
		{Name: "c", Country: "FR", City: "Paris"},
	}

	got := hotelweather.FilterCity(hotels, hotelweather.CityKey{Country: "FR", City: "Paris"})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)
}

func TestCenterOf(t *testing.T) {
	t.Parallel()

	t.Run("returns bounding box midpoint", func(t *testing.T) {
		t.Parallel()

		hotels := []hotelweather.Hotel{
			{Latitude: 10, Longitude: 20},
			{Latitude: 30, Longitude: -40},
			{Latitude: 20, Longitude: 0},
		}

		lat, lon := hotelweather.CenterOf(hotels)
		assert.InDelta(t, 20.0, lat, 1e-9)
		assert.InDelta(t, -10.0, lon, 1e-9)
	})

	t.Run("returns zero for no hotels", func(t *testing.T) {
		t.Parallel()
		lat, lon := hotelweather.CenterOf(nil)
		assert.Zero(t, lat)
		assert.Zero(t, lon)
	})
}
