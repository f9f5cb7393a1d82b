package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

const rawRecordsCacheKey = "stations:records"

// Loader owns the current catalog snapshot and rebuilds it on demand.
//
// Refreshes are single-flight: concurrent calls coalesce so the index build
// happens at most once per refresh. Readers observe either the previous
// snapshot or the fully built new one, never a mid-build state. Only the
// very first build blocks readers, because there is no prior snapshot to
// serve.
type Loader struct {
	repo  ports.StationRepository
	cache ports.LookupCache
	ttl   time.Duration

	mu      sync.Mutex
	version atomic.Uint64
	snap    atomic.Pointer[Catalog]
}

// NewLoader wires a loader over the station repository. cache may be nil;
// when present, raw station records (never the index) pass through it with
// the given TTL.
func NewLoader(repo ports.StationRepository, cache ports.LookupCache, ttl time.Duration) *Loader {
	return &Loader{repo: repo, cache: cache, ttl: ttl}
}

// Snapshot returns the current catalog, building the first one if needed.
// Once a snapshot exists this is a lock-free read.
func (l *Loader) Snapshot(ctx context.Context) (*Catalog, error) {
	if c := l.snap.Load(); c != nil {
		return c, nil
	}
	return l.Refresh(ctx)
}

// Refresh rebuilds the catalog snapshot and atomically swaps it in.
// Callers that queued behind an in-flight refresh receive the snapshot that
// refresh produced instead of triggering another build.
func (l *Loader) Refresh(ctx context.Context) (*Catalog, error) {
	before := l.version.Load()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.version.Load() != before {
		if c := l.snap.Load(); c != nil {
			return c, nil
		}
	}

	stations, err := l.loadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog refresh: %w: %v", domain.ErrDataUnavailable, err)
	}

	next := New(stations)
	next.version = l.version.Add(1)
	l.snap.Store(next)

	return next, nil
}

// loadRecords fetches the raw record+coordinate form, preferring the lookup
// cache. On a hit the spatial index is still rebuilt locally by New; only
// the serializable records are ever cached.
func (l *Loader) loadRecords(ctx context.Context) ([]domain.FuelStation, error) {
	if l.cache != nil {
		raw, ok, err := l.cache.Get(ctx, rawRecordsCacheKey)
		if err != nil {
			log.Printf("catalog cache read failed: %v", err)
		} else if ok {
			var stations []domain.FuelStation
			if err := json.Unmarshal(raw, &stations); err == nil {
				return stations, nil
			}
			log.Printf("catalog cache entry corrupt, falling back to repository")
		}
	}

	stations, err := l.repo.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}

	if l.cache != nil {
		if raw, err := json.Marshal(stations); err == nil {
			if err := l.cache.Set(ctx, rawRecordsCacheKey, raw, l.ttl); err != nil {
				log.Printf("catalog cache write failed: %v", err)
			}
		}
	}

	return stations, nil
}
