package main

import (
	"fmt"
	"time"

	"github.com/AndKraev/hotelweather"
)

// Run executes the analyze command: load listings, pick the densest city per
// country, fetch temperature series, write the analysis report, and resolve
// addresses for the top hotels of each selected city.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	started := time.Now().UTC()

	hotels, err := deps.Hotels.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotelweather.ErrorMessage(err))
		return err
	}
	if len(hotels) == 0 {
		return hotelweather.Errorf(hotelweather.EINVALID, "no valid hotel records found in %q", c.Dir)
	}

	cities := hotelweather.MostHotelsByCountry(hotels)
	fmt.Fprintf(deps.Stdout, "Loaded %d hotels, selected %d cities\n", len(hotels), len(cities))

	locations := make([]hotelweather.CityLocation, 0, len(cities))
	for _, key := range cities {
		lat, lon := hotelweather.CenterOf(hotelweather.FilterCity(hotels, key))
		locations = append(locations, hotelweather.CityLocation{
			CityKey:   key,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	weather, err := deps.Weather.TemperatureRanges(deps.Ctx, locations)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotelweather.ErrorMessage(err))
		return err
	}

	report, err := hotelweather.Analyze(weather)
	if err != nil {
		return err
	}

	if err := deps.Reports.WriteReport(report); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Hottest: %s/%s  Coldest: %s/%s\n",
		report.HottestCity.Country, report.HottestCity.City,
		report.ColdestCity.Country, report.ColdestCity.City)

	selected := c.selectHotels(hotels, cities)
	coords := make([]hotelweather.Coordinate, len(selected))
	for i, h := range selected {
		coords[i] = hotelweather.Coordinate{Latitude: h.Latitude, Longitude: h.Longitude}
	}

	addresses, err := deps.Geocoder.ReverseAll(deps.Ctx, coords)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hotelweather.ErrorMessage(err))
		return err
	}

	if err := deps.Reports.WriteHotels(selected, addresses); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s and hotel addresses to %s\n", "analysis.json", c.Out)

	if deps.Runs != nil {
		run := &hotelweather.FetchRun{
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
			// One forecast plus five history calls per city, then one
			// geocoding call per selected hotel.
			Requests: len(locations)*6 + len(selected),
		}
		if err := deps.Runs.RecordRun(deps.Ctx, run); err != nil {
			deps.Logger.Error("failed to record run", "err", err.Error())
		}
	}

	return nil
}

// selectHotels takes up to Hotels records per selected city, in listing order.
func (c *AnalyzeCmd) selectHotels(hotels []hotelweather.Hotel, cities []hotelweather.CityKey) []hotelweather.Hotel {
	var selected []hotelweather.Hotel
	for _, key := range cities {
		cityHotels := hotelweather.FilterCity(hotels, key)
		if len(cityHotels) > c.Hotels {
			cityHotels = cityHotels[:c.Hotels]
		}
		selected = append(selected, cityHotels...)
	}
	return selected
}
