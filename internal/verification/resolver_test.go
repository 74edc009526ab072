package verification

import (
	"testing"
	"time"

	"soundguard/internal/artists"
)

var epoch = time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

func identity(id, name string, hours int) artists.Identity {
	return artists.Identity{ID: id, DisplayName: name, Verified: true, CreatedAt: epoch.Add(time.Duration(hours) * time.Hour)}
}

func TestResolveKeepsUploaderWithoutBetterCandidate(t *testing.T) {
	uploader := identity("me", "Adele", 10)
	got := Resolve("Adele", uploader, []artists.Identity{identity("x", "Adele Tribute Band", 0)})
	if got.Canonical.ID != "me" || got.Score != 1 {
		t.Fatalf("unexpected resolution %+v", got)
	}
}

func TestResolveHigherScoreWins(t *testing.T) {
	uploader := identity("me", "Adele S", 0)
	got := Resolve("Adele", uploader, []artists.Identity{identity("adele", "Adele", 5)})
	if got.Canonical.ID != "adele" || got.Score != 1 {
		t.Fatalf("unexpected resolution %+v", got)
	}
}

func TestResolveExactMatchWinsTieRegardlessOfCreation(t *testing.T) {
	uploader := identity("me", "Uploader", 0)
	older := identity("older", "Baab", 1)
	exact := identity("exact", "ABBA", 9)

	for _, order := range [][]artists.Identity{{older, exact}, {exact, older}} {
		got := Resolve("Abba", uploader, order)
		if got.Canonical.ID != "exact" {
			t.Fatalf("expected exact match to win for order %v, got %+v", order, got.Canonical)
		}
	}
}

func TestResolveNonExactTiePrefersEarlierCreation(t *testing.T) {
	uploader := identity("me", "Uploader", 0)
	got := Resolve("Abba", uploader, []artists.Identity{
		identity("later", "Baab", 5),
		identity("earlier", "Bbaa", 1),
	})
	if got.Canonical.ID != "earlier" {
		t.Fatalf("expected earlier candidate, got %+v", got.Canonical)
	}
}

func TestResolveExactTiePrefersEarlierCreation(t *testing.T) {
	uploader := identity("me", "Adele", 10)
	got := Resolve("Adele", uploader, []artists.Identity{identity("first", "ADELE", 2)})
	if got.Canonical.ID != "first" {
		t.Fatalf("expected older exact match to win, got %+v", got.Canonical)
	}
}

func TestResolveIdenticalCreationKeepsFirstSeen(t *testing.T) {
	uploader := identity("me", "Uploader", 0)
	got := Resolve("Abba", uploader, []artists.Identity{
		identity("one", "Baab", 3),
		identity("two", "Bbaa", 3),
	})
	if got.Canonical.ID != "one" {
		t.Fatalf("expected first-seen candidate, got %+v", got.Canonical)
	}
}

func TestResolveZeroScoresNeverSwitch(t *testing.T) {
	uploader := identity("me", "", 10)
	got := Resolve("Abc", uploader, []artists.Identity{identity("older", "Zzz", 0)})
	if got.Canonical.ID != "me" || got.Score != 0 {
		t.Fatalf("expected uploader to remain canonical, got %+v", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	uploader := identity("me", "Adele Smith", 4)
	candidates := []artists.Identity{
		identity("a", "Adele", 3),
		identity("b", "Adèle", 1),
		identity("c", "Adele Project", 0),
	}
	first := Resolve("Adele", uploader, candidates)
	for i := 0; i < 10; i++ {
		if got := Resolve("Adele", uploader, candidates); got != first {
			t.Fatalf("resolution changed between runs: %+v vs %+v", first, got)
		}
	}
	if first.Canonical.ID != "b" {
		t.Fatalf("expected oldest exact match, got %+v", first.Canonical)
	}
}
