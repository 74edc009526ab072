package api

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"soundguard/internal/config"
	"soundguard/internal/recognition"
	"soundguard/internal/services"
	"soundguard/internal/testsupport"
	"soundguard/internal/verification"
)

type stubService struct {
	result string
	calls  int
}

func (s *stubService) Identify(context.Context, string) (*recognition.Response, error) {
	s.calls++
	return &recognition.Response{Status: recognition.StatusSuccess, Result: json.RawMessage(s.result)}, nil
}

func writeAudio(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "My Song.mp3")
	testsupport.WriteFile(t, path, 512)
	return path
}

func seededConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.SeedArtist(t, store, "adele", "Adele", true, 0)
	testsupport.SeedArtist(t, store, "adele-s", "Adele S", true, 1)
	testsupport.SeedArtist(t, store, "newbie", "DJ Newbie", false, 2)
	return cfg
}

func TestVerifyFileBlocksImpersonation(t *testing.T) {
	cfg := seededConfig(t)
	service := &stubService{result: `{"title":"Hello","artist":"Adele"}`}

	resp, err := VerifyFile(context.Background(), VerifyFileRequest{
		Config:        cfg,
		Path:          writeAudio(t, testsupport.BaseDir(cfg)),
		UploaderID:    "adele-s",
		Featured:      []string{"A, B", " "},
		EngineOptions: []EngineOption{WithRecognitionService(service)},
	})
	if err != nil {
		t.Fatalf("VerifyFile returned error: %v", err)
	}
	if resp.Outcome != "blocked" || resp.Canonical == nil || resp.Canonical.ID != "adele" {
		t.Fatalf("expected block citing adele, got %+v", resp)
	}
	if resp.Uploader == nil || resp.Uploader.ID != "adele-s" {
		t.Fatalf("expected uploader in response, got %+v", resp.Uploader)
	}
	if diff := cmp.Diff([]string{"A", "B"}, resp.Featured); diff != "" {
		t.Fatalf("featured mismatch (-want +got):\n%s", diff)
	}
	if n := testsupport.CountFiles(t, cfg.Paths.TempDir, "soundguard-*"); n != 0 {
		t.Fatalf("expected no staged files, found %d", n)
	}
}

func TestVerifyFileOwnerIsSafe(t *testing.T) {
	cfg := seededConfig(t)
	service := &stubService{result: `{"title":"Hello","artist":"Adele"}`}

	resp, err := VerifyFile(context.Background(), VerifyFileRequest{
		Config:        cfg,
		Path:          writeAudio(t, testsupport.BaseDir(cfg)),
		UploaderID:    "adele",
		EngineOptions: []EngineOption{WithRecognitionService(service)},
	})
	if err != nil {
		t.Fatalf("VerifyFile returned error: %v", err)
	}
	if resp.Outcome != "safe" || resp.Reason != "owner_confirmed" {
		t.Fatalf("expected safe owner_confirmed, got %+v", resp)
	}
}

func TestVerifyFileUnknownUploader(t *testing.T) {
	cfg := seededConfig(t)
	service := &stubService{result: `null`}

	_, err := VerifyFile(context.Background(), VerifyFileRequest{
		Config:        cfg,
		Path:          writeAudio(t, testsupport.BaseDir(cfg)),
		UploaderID:    "ghost",
		EngineOptions: []EngineOption{WithRecognitionService(service)},
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if service.calls != 0 {
		t.Fatal("recognition must not run for unknown uploaders")
	}
}

func TestVerifyFileMissingFile(t *testing.T) {
	cfg := seededConfig(t)
	_, err := VerifyFile(context.Background(), VerifyFileRequest{
		Config:     cfg,
		Path:       filepath.Join(testsupport.BaseDir(cfg), "missing.mp3"),
		UploaderID: "adele",
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewEngineRequiresToken(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRecognitionToken(""))
	store := testsupport.MustOpenStore(t, cfg)
	if _, err := NewEngine(cfg, store, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := NewEngine(cfg, store, nil, WithRecognitionService(&stubService{})); err != nil {
		t.Fatalf("injected service should not need a token: %v", err)
	}
}

func TestVerifyUploadTitleFallsBackToFileName(t *testing.T) {
	cfg := seededConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	capture := &capturingVerifier{}

	if _, _, err := VerifyUpload(context.Background(), capture, store, VerifyUploadRequest{
		FileName:   "Track 01.flac",
		Audio:      []byte("x"),
		UploaderID: "newbie",
	}); err != nil {
		t.Fatalf("VerifyUpload returned error: %v", err)
	}
	if capture.req.Title != "Track 01" || capture.req.UploaderName != "DJ Newbie" || capture.req.UploaderVerified {
		t.Fatalf("unexpected engine request %+v", capture.req)
	}
}

type capturingVerifier struct {
	req verification.UploadRequest
}

func (c *capturingVerifier) VerifyUpload(_ context.Context, req verification.UploadRequest) (verification.Verdict, error) {
	c.req = req
	return verification.Verdict{Outcome: verification.OutcomeSafe, Reason: verification.ReasonNoMatch}, nil
}
