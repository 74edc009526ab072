package artists

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"soundguard/internal/logging"
	"soundguard/internal/services"
	"soundguard/internal/textutil"
)

// Finder builds candidate lists for a recognized artist name.
//
// Names that share neither a normalized form, a leading token, nor a
// substring with the recognized name are never considered, even when the
// similarity scorer would rate them highly.
type Finder struct {
	directory Directory
	logger    *slog.Logger
}

// NewFinder wraps a Directory.
func NewFinder(directory Directory, logger *slog.Logger) *Finder {
	return &Finder{
		directory: directory,
		logger:    logging.NewComponentLogger(logger, "artist-finder"),
	}
}

// FilterFor derives the directory filter for a recognized name.
func FilterFor(matchedName, excludeID string) Filter {
	matchedName = strings.TrimSpace(matchedName)
	return Filter{
		ExcludeID:      strings.TrimSpace(excludeID),
		NameEquals:     textutil.NormalizeName(matchedName),
		NameStartsWith: textutil.FirstToken(matchedName),
		NameContains:   strings.ToLower(matchedName),
	}
}

// FindCandidates returns verified artists other than excludeID that may own
// matchedName, ordered by creation time and then ID. An empty name yields no
// candidates without touching the directory.
func (f *Finder) FindCandidates(ctx context.Context, matchedName, excludeID string) ([]Identity, error) {
	if strings.TrimSpace(matchedName) == "" {
		return nil, nil
	}
	if f == nil || f.directory == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "find candidates", "artist directory not configured", nil)
	}
	filter := FilterFor(matchedName, excludeID)
	candidates, err := f.directory.FindVerifiedArtists(ctx, filter)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, stageName, "find candidates", "directory query failed", err)
	}
	slices.SortStableFunc(candidates, func(a, b Identity) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	logging.WithContext(ctx, f.logger).Debug("candidate artists loaded",
		logging.String("matched_artist", matchedName),
		logging.Int("candidate_count", len(candidates)),
	)
	return candidates, nil
}
