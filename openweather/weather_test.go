package openweather_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AndKraev/hotelweather"
	"github.com/AndKraev/hotelweather/mock"
	"github.com/AndKraev/hotelweather/openweather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forecastBody(baseTS int64) string {
	daily := ""
	for i := 0; i < 6; i++ {
		if i > 0 {
			daily += ","
		}
		daily += fmt.Sprintf(`{"dt":%d,"temp":{"min":%d,"max":%d}}`, baseTS+int64(i)*86400, 10+i, 20+i)
	}
	return fmt.Sprintf(`{"daily":[%s]}`, daily)
}

func historyBody(ts int64, temps ...float64) string {
	hourly := ""
	for i, temp := range temps {
		if i > 0 {
			hourly += ","
		}
		hourly += fmt.Sprintf(`{"temp":%g}`, temp)
	}
	return fmt.Sprintf(`{"current":{"dt":%d},"hourly":[%s]}`, ts, hourly)
}

func TestService_TemperatureRanges(t *testing.T) {
	t.Parallel()

	paris := hotelweather.CityLocation{
		CityKey:   hotelweather.CityKey{Country: "FR", City: "Paris"},
		Latitude:  48.85,
		Longitude: 2.35,
	}

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		s := openweather.NewService(&mock.BatchFetcher{}, "")
		_, err := s.TemperatureRanges(context.Background(), []hotelweather.CityLocation{paris})
		require.Error(t, err)
		assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(err))
	})

	t.Run("builds six requests per location", func(t *testing.T) {
		t.Parallel()

		now := time.Unix(1_700_000_000, 0)
		var captured []hotelweather.Request
		fetcher := &mock.BatchFetcher{
			FetchAllFn: func(_ context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
				captured = reqs
				return nil, hotelweather.Errorf(hotelweather.EUNAVAILABLE, "stop here")
			},
		}

		s := openweather.NewService(fetcher, "KEY", openweather.WithNow(func() time.Time { return now }))
		_, err := s.TemperatureRanges(context.Background(), []hotelweather.CityLocation{paris})
		require.Error(t, err)

		require.Len(t, captured, 6)
		assert.Contains(t, captured[0].URL, "onecall?")
		assert.Contains(t, captured[0].URL, "appid=KEY")
		assert.Contains(t, captured[0].URL, "units=metric")
		for day := 1; day <= 5; day++ {
			url := captured[day].URL
			assert.Contains(t, url, "timemachine")
			assert.Contains(t, url, fmt.Sprintf("dt=%d", now.Unix()-int64(day)*86400))
		}
		for _, req := range captured {
			assert.Equal(t, hotelweather.DecodeJSON, req.Decode)
		}
	})

	t.Run("reshapes responses into eleven sorted day samples", func(t *testing.T) {
		t.Parallel()

		const nowTS = int64(1_700_000_000)
		fetcher := &mock.BatchFetcher{
			FetchAllFn: func(_ context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
				table := make(hotelweather.ResultTable)
				table["FR/Paris:forecast"] = hotelweather.Result{Body: forecastBody(nowTS)}
				for day := 1; day <= 5; day++ {
					ts := nowTS - int64(day)*86400
					key := fmt.Sprintf("FR/Paris:history:%d", day)
					table[key] = hotelweather.Result{Body: historyBody(ts, 5, -1, 8)}
				}
				return table, nil
			},
		}

		s := openweather.NewService(fetcher, "KEY")
		weather, err := s.TemperatureRanges(context.Background(), []hotelweather.CityLocation{paris})
		require.NoError(t, err)
		require.Len(t, weather, 1)

		days := weather[0].Days
		require.Len(t, days, 11)
		for i := 1; i < len(days); i++ {
			assert.Less(t, days[i-1].Timestamp, days[i].Timestamp, "days must be sorted ascending")
		}

		// The oldest sample is history day 5 with hourly range [-1, 8].
		assert.Equal(t, nowTS-5*86400, days[0].Timestamp)
		assert.Equal(t, -1.0, days[0].Min)
		assert.Equal(t, 8.0, days[0].Max)

		// The newest sample is the last forecast day.
		assert.Equal(t, nowTS+5*86400, days[10].Timestamp)
		assert.Equal(t, 15.0, days[10].Min)
		assert.Equal(t, 25.0, days[10].Max)
	})

	t.Run("fails the city when any of its requests failed", func(t *testing.T) {
		t.Parallel()

		const nowTS = int64(1_700_000_000)
		fetcher := &mock.BatchFetcher{
			FetchAllFn: func(_ context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
				table := make(hotelweather.ResultTable)
				table["FR/Paris:forecast"] = hotelweather.Result{Body: forecastBody(nowTS)}
				for day := 1; day <= 5; day++ {
					key := fmt.Sprintf("FR/Paris:history:%d", day)
					table[key] = hotelweather.Result{Body: historyBody(nowTS, 1)}
				}
				table["FR/Paris:history:3"] = hotelweather.Result{
					Err: hotelweather.Errorf(hotelweather.EUNAVAILABLE, "exhausted"),
				}
				return table, nil
			},
		}

		s := openweather.NewService(fetcher, "KEY")
		_, err := s.TemperatureRanges(context.Background(), []hotelweather.CityLocation{paris})
		require.Error(t, err)
		assert.Equal(t, hotelweather.EUNAVAILABLE, hotelweather.ErrorCode(err))
	})

	t.Run("rejects forecast with too few days", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.BatchFetcher{
			FetchAllFn: func(_ context.Context, reqs []hotelweather.Request) (hotelweather.ResultTable, error) {
				table := make(hotelweather.ResultTable)
				for _, req := range reqs {
					table[req.ResultKey()] = hotelweather.Result{Body: `{"daily":[],"current":{"dt":1},"hourly":[{"temp":1}]}`}
				}
				return table, nil
			},
		}

		s := openweather.NewService(fetcher, "KEY")
		_, err := s.TemperatureRanges(context.Background(), []hotelweather.CityLocation{paris})
		require.Error(t, err)
		assert.Equal(t, hotelweather.EUNAVAILABLE, hotelweather.ErrorCode(err))
	})
}
