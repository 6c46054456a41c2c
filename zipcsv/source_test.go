package zipcsv_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AndKraev/hotelweather"
	"github.com/AndKraev/hotelweather/zipcsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeZip creates a zip archive with the given file contents.
func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

const header = "Id,Name,Country,City,Latitude,Longitude\n"

func TestSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads hotels from all archives", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeZip(t, filepath.Join(dir, "part1.zip"), map[string]string{
			"hotels1.csv": header + "0,Grand Plaza,FR,Paris,48.85,2.35\n",
		})
		writeZip(t, filepath.Join(dir, "part2.zip"), map[string]string{
			"hotels2.csv": header + "0,Sea View,ES,Barcelona,41.38,2.17\n",
		})

		hotels, err := zipcsv.NewSource(dir).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, hotels, 2)
	})

	t.Run("drops dirty rows", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeZip(t, filepath.Join(dir, "hotels.zip"), map[string]string{
			"hotels.csv": header +
				"0,Good Hotel,FR,Paris,48.85,2.35\n" +
				"1,,FR,Paris,48.85,2.35\n" + // blank name
				"2,No City,FR,,48.85,2.35\n" + // blank city
				"3,Bad Lat,FR,Paris,not-a-number,2.35\n" + // unparsable
				"4,Out Of Range,FR,Paris,91.2,2.35\n" + // |lat| > 90
				"5,Out Of Range,FR,Paris,48.85,-180.5\n" + // |lon| > 180
				"6,Short Row\n", // too few fields
		})

		hotels, err := zipcsv.NewSource(dir).Load(context.Background())
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, hotelweather.Hotel{
			Name:      "Good Hotel",
			Country:   "FR",
			City:      "Paris",
			Latitude:  48.85,
			Longitude: 2.35,
		}, hotels[0])
	})

	t.Run("skips files that are not zip archives", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a zip"), 0o644))
		writeZip(t, filepath.Join(dir, "hotels.zip"), map[string]string{
			"hotels.csv": header + "0,Good Hotel,FR,Paris,48.85,2.35\n",
			"notes.md":   "ignored, not a csv",
		})

		hotels, err := zipcsv.NewSource(dir).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, hotels, 1)
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := zipcsv.NewSource(filepath.Join(t.TempDir(), "nope")).Load(context.Background())
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeZip(t, filepath.Join(dir, "hotels.zip"), map[string]string{
			"hotels.csv": header + "0,Good Hotel,FR,Paris,48.85,2.35\n",
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := zipcsv.NewSource(dir).Load(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
