// Package fs persists analysis output to the local filesystem.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AndKraev/hotelweather"
)

// Ensure Writer implements hotelweather.ReportWriter at compile time.
var _ hotelweather.ReportWriter = (*Writer)(nil)

// Writer implements hotelweather.ReportWriter, writing analysis.json and
// hotels.csv into a single output directory.
type Writer struct {
	outDir string
}

// NewWriter creates a Writer rooted at outDir. The directory is created on
// first write if it doesn't exist.
func NewWriter(outDir string) *Writer {
	return &Writer{outDir: outDir}
}

// dateLayout matches the day.month.year format of the report consumers.
const dateLayout = "02.01.2006"

type cityDateJSON struct {
	City string `json:"City"`
	Date string `json:"Date"`
}

type cityJSON struct {
	City string `json:"City"`
}

type reportJSON struct {
	MaxTemp  cityDateJSON `json:"Maximum Temperature"`
	MinTemp  cityDateJSON `json:"Minimum Temperature"`
	MaxDelta cityJSON     `json:"Maximum delta of maximum temperatures"`
	DayDelta cityDateJSON `json:"Maximum delta of minimum and maximum temperatures"`
}

// WriteReport writes the temperature extremes to analysis.json.
func (w *Writer) WriteReport(report *hotelweather.Report) error {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return err
	}

	out := reportJSON{
		MaxTemp: cityDateJSON{
			City: report.HottestCity.City,
			Date: report.HottestCity.Date.Format(dateLayout),
		},
		MinTemp: cityDateJSON{
			City: report.ColdestCity.City,
			Date: report.ColdestCity.Date.Format(dateLayout),
		},
		MaxDelta: cityJSON{City: report.WidestMaxSpread.City},
		DayDelta: cityDateJSON{
			City: report.WidestDaySpread.City,
			Date: report.WidestDaySpread.Date.Format(dateLayout),
		},
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(w.outDir, "analysis.json"), data, 0644)
}

// WriteHotels writes the selected hotels with their resolved addresses to
// hotels.csv. The addresses slice must be positionally aligned with hotels.
func (w *Writer) WriteHotels(hotels []hotelweather.Hotel, addresses []string) error {
	if len(hotels) != len(addresses) {
		return hotelweather.Errorf(hotelweather.EINVALID, "got %d addresses for %d hotels", len(addresses), len(hotels))
	}

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(w.outDir, "hotels.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"Country", "City", "Name", "Address", "Latitude", "Longitude"}); err != nil {
		return err
	}

	for i, h := range hotels {
		record := []string{
			h.Country,
			h.City,
			h.Name,
			addresses[i],
			strconv.FormatFloat(h.Latitude, 'f', -1, 64),
			strconv.FormatFloat(h.Longitude, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	return f.Close()
}
