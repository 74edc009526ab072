package api

import (
	"context"
	"errors"
	"strings"

	"soundguard/internal/artists"
	"soundguard/internal/services"
)

// ArtistStore abstracts the directory operations the API and CLI need.
type ArtistStore interface {
	Upsert(ctx context.Context, identity artists.Identity) (artists.Identity, error)
	Get(ctx context.Context, id string) (artists.Identity, error)
	List(ctx context.Context, verifiedOnly bool) ([]artists.Identity, error)
	Remove(ctx context.Context, id string) error
}

// ArtistService exposes directory administration returning API DTOs.
type ArtistService struct {
	store ArtistStore
}

// NewArtistService constructs an ArtistService around the provided store.
func NewArtistService(store ArtistStore) *ArtistService {
	if store == nil {
		return nil
	}
	return &ArtistService{store: store}
}

// List returns directory entries ordered by creation time.
func (s *ArtistService) List(ctx context.Context, verifiedOnly bool) ([]ArtistItem, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	list, err := s.store.List(ctx, verifiedOnly)
	if err != nil {
		return nil, err
	}
	return FromIdentities(list), nil
}

// Describe fetches one directory entry.
func (s *ArtistService) Describe(ctx context.Context, id string) (ArtistItem, error) {
	if s == nil || s.store == nil {
		return ArtistItem{}, services.Wrap(services.ErrNotFound, "directory", "describe", "directory unavailable", nil)
	}
	identity, err := s.store.Get(ctx, id)
	if err != nil {
		return ArtistItem{}, err
	}
	return FromIdentity(identity), nil
}

// AddArtistRequest captures the inputs for creating or updating an entry.
type AddArtistRequest struct {
	ID          string
	DisplayName string
	Verified    bool
}

// Add inserts or updates a directory entry.
func (s *ArtistService) Add(ctx context.Context, req AddArtistRequest) (ArtistItem, error) {
	if s == nil || s.store == nil {
		return ArtistItem{}, services.Wrap(services.ErrConfiguration, "directory", "add", "directory unavailable", nil)
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return ArtistItem{}, services.Wrap(services.ErrValidation, "directory", "add", "display name is required", nil)
	}
	identity, err := s.store.Upsert(ctx, artists.Identity{
		ID:          strings.TrimSpace(req.ID),
		DisplayName: name,
		Verified:    req.Verified,
	})
	if err != nil {
		return ArtistItem{}, err
	}
	return FromIdentity(identity), nil
}

// Remove deletes directory entries by ID and reports how many were removed.
// Missing IDs are collected rather than aborting the batch.
func (s *ArtistService) Remove(ctx context.Context, ids ...string) (removed int, missing []string, err error) {
	if s == nil || s.store == nil {
		return 0, nil, services.Wrap(services.ErrConfiguration, "directory", "remove", "directory unavailable", nil)
	}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := s.store.Remove(ctx, id); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				missing = append(missing, id)
				continue
			}
			return removed, missing, err
		}
		removed++
	}
	return removed, missing, nil
}
