package dataset

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/fleetkpi/internal/config"
	"github.com/rshade/fleetkpi/internal/logging"
)

// Loader reads datasets from Parquet files and memoizes them per name.
// It is safe for concurrent use.
type Loader struct {
	paths map[Name]string
	mem   memory.Allocator
	cache *tableCache
}

// NewLoader returns a Loader reading each dataset from the given path.
func NewLoader(paths map[Name]string) *Loader {
	p := make(map[Name]string, len(paths))
	for k, v := range paths {
		p[k] = v
	}
	return &Loader{
		paths: p,
		mem:   memory.NewGoAllocator(),
		cache: newTableCache(),
	}
}

// NewLoaderFromConfig resolves dataset paths from cfg.Data.
func NewLoaderFromConfig(cfg *config.Config) *Loader {
	paths := make(map[Name]string, len(Names()))
	for _, n := range Names() {
		paths[n] = cfg.DatasetPath(string(n))
	}
	return NewLoader(paths)
}

// Path returns the file configured for name.
func (l *Loader) Path(name Name) string {
	return l.paths[name]
}

// Load returns the table for name, reading the file on first use.
func (l *Loader) Load(ctx context.Context, name Name) (*Table, error) {
	name, err := ParseName(string(name))
	if err != nil {
		return nil, err
	}
	if t, ok := l.cache.get(name); ok {
		return t, nil
	}

	log := logging.FromContext(ctx)
	path := l.paths[name]
	if path == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPath, name)
	}

	start := time.Now()
	arrowTable, err := readParquet(ctx, path, l.mem)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", name, err)
	}
	defer arrowTable.Release()

	t, err := decode(name, arrowTable)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", name, err)
	}
	t = l.cache.put(name, t)

	log.Debug().
		Ctx(ctx).
		Str("operation", "load").
		Str("dataset", string(name)).
		Str("path", path).
		Int("rows", t.Len()).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded")
	return t, nil
}

// LoadAll loads every dataset concurrently. The first failure cancels the rest.
func (l *Loader) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, n := range Names() {
		g.Go(func() error {
			_, err := l.Load(gctx, n)
			return err
		})
	}
	return g.Wait()
}

// Stats returns cache counters.
func (l *Loader) Stats() CacheStats {
	return l.cache.stats()
}

// LoadedAt reports when name was first read.
func (l *Loader) LoadedAt(name Name) (time.Time, bool) {
	return l.cache.loadedAt(name)
}

// Trips returns a copy of the trip records.
func (l *Loader) Trips(ctx context.Context) ([]Trip, error) {
	t, err := l.Load(ctx, Trips)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Trips), nil
}

// Vehicles returns a copy of the vehicle records.
func (l *Loader) Vehicles(ctx context.Context) ([]Vehicle, error) {
	t, err := l.Load(ctx, Vehicles)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Vehicles), nil
}

// Air returns a copy of the air-quality records.
func (l *Loader) Air(ctx context.Context) ([]AirQuality, error) {
	t, err := l.Load(ctx, Air)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Air), nil
}

// Fuel returns a copy of the fuel-economy records.
func (l *Loader) Fuel(ctx context.Context) ([]FuelEconomy, error) {
	t, err := l.Load(ctx, Fuel)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Fuel), nil
}
