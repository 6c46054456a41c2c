package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/AndKraev/hotelweather"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Hotels   hotelweather.HotelSource
	Weather  hotelweather.WeatherService
	Geocoder hotelweather.Geocoder
	Fetcher  hotelweather.BatchFetcher
	Reports  hotelweather.ReportWriter
	Runs     hotelweather.RunLog
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Analyze AnalyzeCmd `cmd:"" help:"Analyze hotel listings and report weather extremes"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch URLs through the rate-limited fetcher (debugging)"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Dir         string `arg:"" help:"Directory containing zipped hotel listings"`
	Out         string `short:"o" default:"output" help:"Output directory for analysis.json and hotels.csv"`
	Hotels      int    `default:"3" help:"Hotels per city to resolve addresses for"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent request limit"`
	Cache       string `help:"SQLite database path; enables response caching and run logging"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs        []string `arg:"" help:"URLs to fetch"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent request limit"`
}
