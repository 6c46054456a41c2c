package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/AndKraev/hotelweather"
	"github.com/AndKraev/hotelweather/fetch"
	"github.com/AndKraev/hotelweather/fs"
	hwhttp "github.com/AndKraev/hotelweather/http"
	"github.com/AndKraev/hotelweather/openweather"
	"github.com/AndKraev/hotelweather/pickpoint"
	hwslog "github.com/AndKraev/hotelweather/slog"
	"github.com/AndKraev/hotelweather/sqlite"
	"github.com/AndKraev/hotelweather/zipcsv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the response cache and run log.
	// Opened only when a cache path is given.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, Run uses them instead of
	// constructing the real implementations.
	HotelSource hotelweather.HotelSource
	Weather     hotelweather.WeatherService
	Geocoder    hotelweather.Geocoder
	Fetcher     hotelweather.BatchFetcher
	Reports     hotelweather.ReportWriter
	Runs        hotelweather.RunLog
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Load .env if present; environment wins over file values.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hotelweather"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'hotelweather --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case "analyze":
		if err := m.wireAnalyze(deps, cli); err != nil {
			return err
		}
	case "fetch":
		m.wireFetch(deps, cli.Fetch.Concurrency)
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wireAnalyze builds the full analysis pipeline: transport, rate-limited
// fetcher, weather and geocoding services, and output writers.
func (m *Main) wireAnalyze(deps *Dependencies, cli *CLI) error {
	weatherKey := os.Getenv("OPENWEATHER_API_KEY")
	if m.Weather == nil && weatherKey == "" {
		fmt.Fprintln(deps.Stderr, "OPENWEATHER_API_KEY environment variable not set. Get an API key at https://openweathermap.org/api")
		return fmt.Errorf("OPENWEATHER_API_KEY not set")
	}

	geocodeKey := os.Getenv("PICKPOINT_API_KEY")
	if m.Geocoder == nil && geocodeKey == "" {
		fmt.Fprintln(deps.Stderr, "PICKPOINT_API_KEY environment variable not set. Get an API key at https://pickpoint.io")
		return fmt.Errorf("PICKPOINT_API_KEY not set")
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = m.newFetcher(deps, cli.Analyze.Concurrency)
	}

	if cli.Analyze.Cache != "" {
		m.DB = sqlite.NewDB(cli.Analyze.Cache)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open cache database at %q: %w", cli.Analyze.Cache, err)
		}
		fetcher = fetch.NewCachingFetcher(fetcher, sqlite.NewResponseCache(m.DB))
		if m.Runs == nil {
			m.Runs = sqlite.NewRunService(m.DB)
		}
	}

	if m.HotelSource == nil {
		m.HotelSource = zipcsv.NewSource(cli.Analyze.Dir)
	}
	if m.Weather == nil {
		m.Weather = openweather.NewService(fetcher, weatherKey)
	}
	if m.Geocoder == nil {
		m.Geocoder = pickpoint.NewGeocoder(fetcher, geocodeKey)
	}
	if m.Reports == nil {
		m.Reports = fs.NewWriter(cli.Analyze.Out)
	}

	deps.Hotels = m.HotelSource
	deps.Weather = m.Weather
	deps.Geocoder = m.Geocoder
	deps.Reports = m.Reports
	deps.Runs = m.Runs
	return nil
}

// wireFetch builds the bare fetch pipeline for the debug command.
func (m *Main) wireFetch(deps *Dependencies, concurrency int) {
	if m.Fetcher == nil {
		m.Fetcher = m.newFetcher(deps, concurrency)
	}
	deps.Fetcher = m.Fetcher
}

// newFetcher assembles the shared transport and fetcher stack.
func (m *Main) newFetcher(deps *Dependencies, concurrency int) hotelweather.BatchFetcher {
	var transport hotelweather.Transport = hwhttp.NewTransport()
	transport = hwslog.NewLoggingTransport(transport, deps.Logger)
	transport = hwhttp.NewThrottledTransport(transport, hwhttp.NewHostLimiter(defaultHostRPS))

	inner := &fetch.Fetcher{
		Transport:   transport,
		Concurrency: concurrency,
		Rate:        &fetch.RateLimit{MaxRequests: defaultRateMax, Window: defaultRateWindow},
		OnPause: func(d time.Duration) {
			deps.Logger.Info("rate limit reached, pausing", "duration", d)
		},
	}

	return hwslog.NewLoggingFetcher(inner, deps.Logger)
}

// newLogger builds the program logger. HOTELWEATHER_DEBUG enables per-request
// debug output.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("HOTELWEATHER_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Free OpenWeather accounts allow 60 calls per minute; the rate gate pauses
// for the remainder of the window once the budget is spent.
const (
	defaultRateMax    = 60
	defaultRateWindow = time.Minute
	defaultHostRPS    = 5.0
)
