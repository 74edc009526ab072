package testsupport

import (
	"context"
	"testing"
	"time"

	"soundguard/internal/artists"
	"soundguard/internal/config"
)

// MustOpenStore opens an artists.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *artists.Store {
	t.Helper()

	store, err := artists.Open(cfg)
	if err != nil {
		t.Fatalf("artists.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedArtist inserts a directory entry. The creation time is offset from a
// fixed epoch by order so tie-breaks are deterministic across runs.
func SeedArtist(t testing.TB, store *artists.Store, id, name string, verified bool, order int) artists.Identity {
	t.Helper()

	identity, err := store.Upsert(context.Background(), artists.Identity{
		ID:          id,
		DisplayName: name,
		Verified:    verified,
		CreatedAt:   SeedTime(order),
	})
	if err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	return identity
}

// SeedTime returns the creation timestamp SeedArtist uses for order.
func SeedTime(order int) time.Time {
	return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(order) * time.Hour)
}
