// Package dataset loads the four fleet datasets (trips, vehicles, air quality
// and fuel economy) from Parquet files into typed, read-only record slices.
//
// Tables are memoized per dataset name for the lifetime of a Loader. There is
// no invalidation: a changed file is picked up only by a new Loader.
package dataset
