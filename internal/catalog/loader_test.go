package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-route-service/internal/domain"
)

type fakeRepo struct {
	stations []domain.FuelStation
	err      error
	calls    atomic.Int32
}

func (r *fakeRepo) ListStations(ctx context.Context) ([]domain.FuelStation, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return r.stations, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func TestLoaderSnapshotBuildsOnce(t *testing.T) {
	repo := &fakeRepo{stations: []domain.FuelStation{station("a", 35.0, -101.0, 3.2)}}
	loader := NewLoader(repo, nil, time.Hour)

	first, err := loader.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Len())

	second, err := loader.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestLoaderRefreshSwapsSnapshot(t *testing.T) {
	repo := &fakeRepo{stations: []domain.FuelStation{station("a", 35.0, -101.0, 3.2)}}
	loader := NewLoader(repo, nil, time.Hour)

	first, err := loader.Refresh(context.Background())
	require.NoError(t, err)

	repo.stations = append(repo.stations, station("b", 36.0, -101.0, 3.4))
	second, err := loader.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, 1, first.Len(), "prior snapshot stays readable")
	assert.Equal(t, 2, second.Len())
	assert.Greater(t, second.Version(), first.Version())
}

func TestLoaderConcurrentFirstBuildCoalesces(t *testing.T) {
	repo := &fakeRepo{stations: []domain.FuelStation{station("a", 35.0, -101.0, 3.2)}}
	loader := NewLoader(repo, nil, time.Hour)

	var wg sync.WaitGroup
	snaps := make([]*Catalog, 8)
	errs := make([]error, len(snaps))
	for i := range snaps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snaps[i], errs[i] = loader.Snapshot(context.Background())
		}(i)
	}
	wg.Wait()

	// Callers that raced the first build coalesce onto the snapshot it
	// produced instead of each triggering its own build.
	for i, c := range snaps {
		require.NoError(t, errs[i])
		require.NotNil(t, c)
		assert.Equal(t, 1, c.Len())
	}
	assert.Less(t, repo.calls.Load(), int32(len(snaps)))
}

func TestLoaderUsesCachedRawRecords(t *testing.T) {
	cached := []domain.FuelStation{station("cached", 35.0, -101.0, 3.1)}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	cache := newFakeCache()
	cache.entries[rawRecordsCacheKey] = raw

	// The repository errors, proving the records came from the cache.
	repo := &fakeRepo{err: errors.New("db down")}
	loader := NewLoader(repo, cache, time.Hour)

	cat, err := loader.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())
	assert.Equal(t, "cached", cat.Station(0).StationID)

	// The index was rebuilt locally from the raw form.
	assert.Len(t, cat.Nearby(domain.Coordinates{Lat: 35.0, Lon: -101.0}, 10), 1)
}

func TestLoaderWritesRecordsToCache(t *testing.T) {
	repo := &fakeRepo{stations: []domain.FuelStation{station("a", 35.0, -101.0, 3.2)}}
	cache := newFakeCache()
	loader := NewLoader(repo, cache, time.Hour)

	_, err := loader.Refresh(context.Background())
	require.NoError(t, err)

	raw, ok, _ := cache.Get(context.Background(), rawRecordsCacheKey)
	require.True(t, ok)

	var stations []domain.FuelStation
	require.NoError(t, json.Unmarshal(raw, &stations))
	require.Len(t, stations, 1)
	assert.Equal(t, "a", stations[0].StationID)
}

func TestLoaderRepositoryFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	loader := NewLoader(repo, nil, time.Hour)

	_, err := loader.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestLoaderEmptySourceYieldsValidCatalog(t *testing.T) {
	repo := &fakeRepo{}
	loader := NewLoader(repo, nil, time.Hour)

	cat, err := loader.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, cat.Len())
	assert.Empty(t, cat.Nearby(domain.Coordinates{Lat: 35, Lon: -101}, 50))
}
