package main

import (
	"encoding/json"
	"strings"
	"testing"

	"soundguard/internal/api"
)

func TestArtistsAddListRemove(t *testing.T) {
	env := setupCLIEnv(t, "")

	out := env.mustRun(t, "artists", "add", "--id", "adele", "--verified", "Adele")
	if !strings.Contains(out, "Saved artist Adele (adele, verified: yes)") {
		t.Fatalf("unexpected add output: %s", out)
	}
	env.mustRun(t, "artists", "add", "--id", "newbie", "DJ", "Newbie")

	out = env.mustRun(t, "artists", "list")
	if !strings.Contains(out, "Adele") || !strings.Contains(out, "DJ Newbie") {
		t.Fatalf("list output missing entries:\n%s", out)
	}

	out = env.mustRun(t, "artists", "list", "--verified", "--json")
	var resp api.ArtistListResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode list json: %v\n%s", err, out)
	}
	if len(resp.Artists) != 1 || resp.Artists[0].ID != "adele" {
		t.Fatalf("unexpected verified listing: %+v", resp.Artists)
	}

	out = env.mustRun(t, "artists", "remove", "newbie", "ghost")
	if !strings.Contains(out, "Removed 1 artist(s)") || !strings.Contains(out, "Not found: ghost") {
		t.Fatalf("unexpected remove output: %s", out)
	}

	out = env.mustRun(t, "artists", "list", "--json")
	resp = api.ArtistListResponse{}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode list json: %v", err)
	}
	if len(resp.Artists) != 1 {
		t.Fatalf("expected one artist after removal, got %d", len(resp.Artists))
	}
}

func TestArtistsListEmptyDirectory(t *testing.T) {
	env := setupCLIEnv(t, "")
	out := env.mustRun(t, "artists", "list")
	if !strings.Contains(out, "No artists in directory") {
		t.Fatalf("unexpected output: %s", out)
	}
}
