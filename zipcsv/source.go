// Package zipcsv loads hotel listings from zipped CSV archives.
// Rows with missing fields or invalid coordinates are dropped, not errors:
// real listing exports are dirty and the analysis only needs the clean rows.
package zipcsv

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AndKraev/hotelweather"
)

// Column layout of the listing CSVs. Column 0 is a row index.
const (
	colName = iota + 1
	colCountry
	colCity
	colLatitude
	colLongitude

	minFields = colLongitude + 1
)

// Ensure Source implements hotelweather.HotelSource at compile time.
var _ hotelweather.HotelSource = (*Source)(nil)

// Source reads every zip archive in a directory and parses its CSV members.
// Files that are not zip archives are skipped.
type Source struct {
	dir string
}

// NewSource creates a Source reading from dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Load returns the cleaned hotel rows from all archives in the directory.
func (s *Source) Load(ctx context.Context) ([]hotelweather.Hotel, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var hotels []hotelweather.Hotel
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		archive, err := zip.OpenReader(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			// Not a zip archive.
			continue
		}

		loaded, err := readArchive(archive)
		archive.Close()
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", entry.Name(), err)
		}
		hotels = append(hotels, loaded...)
	}

	return hotels, nil
}

func readArchive(archive *zip.ReadCloser) ([]hotelweather.Hotel, error) {
	var hotels []hotelweather.Hotel
	for _, file := range archive.File {
		if !strings.EqualFold(filepath.Ext(file.Name), ".csv") {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		loaded, err := readCSV(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name, err)
		}
		hotels = append(hotels, loaded...)
	}
	return hotels, nil
}

func readCSV(r io.Reader) ([]hotelweather.Hotel, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var hotels []hotelweather.Hotel
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return hotels, nil
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if hotel, ok := parseRow(record); ok {
			hotels = append(hotels, hotel)
		}
	}
}

// parseRow cleans one CSV record. Rows with blank fields, unparsable numbers
// or out-of-range coordinates are dropped.
func parseRow(record []string) (hotelweather.Hotel, bool) {
	if len(record) < minFields {
		return hotelweather.Hotel{}, false
	}

	hotel := hotelweather.Hotel{
		Name:    strings.TrimSpace(record[colName]),
		Country: strings.TrimSpace(record[colCountry]),
		City:    strings.TrimSpace(record[colCity]),
	}
	if hotel.Name == "" || hotel.Country == "" || hotel.City == "" {
		return hotelweather.Hotel{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[colLatitude]), 64)
	if err != nil {
		return hotelweather.Hotel{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[colLongitude]), 64)
	if err != nil {
		return hotelweather.Hotel{}, false
	}
	if math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return hotelweather.Hotel{}, false
	}

	hotel.Latitude = lat
	hotel.Longitude = lon
	return hotel, true
}
