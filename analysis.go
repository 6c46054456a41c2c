package hotelweather

import "time"

// CityDate pairs a city with the date a temperature extreme occurred on.
type CityDate struct {
	CityKey
	Date time.Time `json:"date"`
}

// Report summarizes temperature extremes across cities.
type Report struct {
	// HottestCity has the highest daily maximum of any city.
	HottestCity CityDate `json:"hottestCity"`

	// ColdestCity has the lowest daily minimum of any city.
	ColdestCity CityDate `json:"coldestCity"`

	// WidestMaxSpread has the largest difference between its highest and
	// lowest daily maxima.
	WidestMaxSpread CityKey `json:"widestMaxSpread"`

	// WidestDaySpread has the largest single-day difference between maximum
	// and minimum temperature.
	WidestDaySpread CityDate `json:"widestDaySpread"`
}

// Analyze computes temperature extremes over per-city day series.
//
// All selections use explicit tie-breaks: equal values prefer the
// lexicographically smallest (country, city) pair, and within a city the
// earliest qualifying date. Every city must carry at least one day sample.
func Analyze(weather []CityWeather) (*Report, error) {
	if len(weather) == 0 {
		return nil, Errorf(EINVALID, "weather analysis requires at least one city")
	}
	for _, cw := range weather {
		if len(cw.Days) == 0 {
			return nil, Errorf(EINVALID, "weather for %s/%s has no day samples", cw.Country, cw.City)
		}
	}

	report := &Report{
		HottestCity:     pickCity(weather, cityMax, true),
		ColdestCity:     pickCity(weather, cityMin, false),
		WidestDaySpread: pickCity(weather, daySpread, true),
	}

	report.WidestMaxSpread = pickSpread(weather)
	return report, nil
}

// cityStat reduces one city's series to a comparable value and the timestamp
// it occurred at (earliest on equal values).
type cityStat func(days []DaySample) (value float64, ts int64)

func cityMax(days []DaySample) (float64, int64) {
	best := days[0]
	for _, d := range days[1:] {
		if d.Max > best.Max {
			best = d
		}
	}
	return best.Max, best.Timestamp
}

func cityMin(days []DaySample) (float64, int64) {
	best := days[0]
	for _, d := range days[1:] {
		if d.Min < best.Min {
			best = d
		}
	}
	return best.Min, best.Timestamp
}

func daySpread(days []DaySample) (float64, int64) {
	best := days[0]
	for _, d := range days[1:] {
		if d.Max-d.Min > best.Max-best.Min {
			best = d
		}
	}
	return best.Max - best.Min, best.Timestamp
}

// pickCity selects the city whose stat is the largest (wantMax) or smallest.
func pickCity(weather []CityWeather, stat cityStat, wantMax bool) CityDate {
	bestValue, bestTS := stat(weather[0].Days)
	best := weather[0].CityKey

	for _, cw := range weather[1:] {
		value, ts := stat(cw.Days)
		better := value > bestValue
		if !wantMax {
			better = value < bestValue
		}
		if better || (value == bestValue && cw.CityKey.Less(best)) {
			bestValue, bestTS, best = value, ts, cw.CityKey
		}
	}

	return CityDate{CityKey: best, Date: time.Unix(bestTS, 0).UTC()}
}

// pickSpread selects the city with the widest spread between its highest and
// lowest daily maxima.
func pickSpread(weather []CityWeather) CityKey {
	best := weather[0].CityKey
	bestSpread := maxSpread(weather[0].Days)

	for _, cw := range weather[1:] {
		spread := maxSpread(cw.Days)
		if spread > bestSpread || (spread == bestSpread && cw.CityKey.Less(best)) {
			best, bestSpread = cw.CityKey, spread
		}
	}
	return best
}

func maxSpread(days []DaySample) float64 {
	lo, hi := days[0].Max, days[0].Max
	for _, d := range days[1:] {
		if d.Max < lo {
			lo = d.Max
		}
		if d.Max > hi {
			hi = d.Max
		}
	}
	return hi - lo
}

// ReportWriter persists analysis output.
type ReportWriter interface {
	WriteReport(report *Report) error
	WriteHotels(hotels []Hotel, addresses []string) error
}
