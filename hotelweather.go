// Package hotelweather analyzes hotel listings to find the most hotel-dense
// city in each country, then enriches those cities with reverse-geocoded
// addresses and multi-day weather statistics fetched from remote HTTP APIs.
// The centerpiece is a bounded-concurrency, rate-limited batch fetcher that
// resolves large URL batches against API quotas without dropping requests.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., fetch/, http/, sqlite/).
package hotelweather
