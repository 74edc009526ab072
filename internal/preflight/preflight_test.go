package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"soundguard/internal/config"
	"soundguard/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckRecognition_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckRecognition(context.Background(), config.Recognition{APIToken: "token", BaseURL: srv.URL})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckRecognition_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	result := CheckRecognition(context.Background(), config.Recognition{APIToken: "token", BaseURL: srv.URL})
	if result.Passed {
		t.Fatal("expected failure for 502")
	}
}

func TestCheckRecognition_MissingToken(t *testing.T) {
	result := CheckRecognition(context.Background(), config.Recognition{BaseURL: "http://127.0.0.1:1"})
	if result.Passed || result.Detail != "API token missing" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckArtistDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	empty := CheckArtistDirectory(context.Background(), cfg.Directory.Path)
	if !empty.Passed || !strings.Contains(empty.Detail, "no verified artists") {
		t.Fatalf("unexpected result for empty directory: %+v", empty)
	}

	testsupport.SeedArtist(t, store, "a", "Adele", true, 0)
	seeded := CheckArtistDirectory(context.Background(), cfg.Directory.Path)
	if !seeded.Passed || !strings.Contains(seeded.Detail, "1 verified artists") {
		t.Fatalf("unexpected result for seeded directory: %+v", seeded)
	}
}

func TestRunLocal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunLocal(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if !AllPassed(results) {
		t.Fatalf("expected all local checks to pass: %+v", results)
	}
}

func TestSummary(t *testing.T) {
	passed, failed := Summary([]Result{{Passed: true}, {}, {Passed: true}})
	if passed != 2 || failed != 1 {
		t.Fatalf("Summary = %d/%d", passed, failed)
	}
	if !AllPassed(nil) {
		t.Fatal("empty result set should pass")
	}
}
