package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"soundguard/internal/artists"
	"soundguard/internal/config"
	"soundguard/internal/logging"
	"soundguard/internal/services"
	"soundguard/internal/verification"
)

// MaxAudioBytes caps the size of an uploaded recording.
const MaxAudioBytes = 64 << 20

// Verifier runs the verification engine.
type Verifier interface {
	VerifyUpload(ctx context.Context, req verification.UploadRequest) (verification.Verdict, error)
}

// UploaderReader loads the uploader's directory entry.
type UploaderReader interface {
	Get(ctx context.Context, id string) (artists.Identity, error)
}

// VerifyUploadRequest is the transport-neutral input shared by the CLI and
// the HTTP server.
type VerifyUploadRequest struct {
	UploadID      string
	Title         string
	FileName      string
	Audio         []byte
	UploaderID    string
	AdminOnBehalf bool
	Featured      []string
}

// VerifyUpload resolves the uploader from the directory and runs the engine.
// The uploader's name, verification state and creation time always come from
// the directory, never from the caller.
func VerifyUpload(ctx context.Context, engine Verifier, uploaders UploaderReader, req VerifyUploadRequest) (VerifyResponse, verification.Verdict, error) {
	if engine == nil || uploaders == nil {
		return VerifyResponse{}, verification.Verdict{}, services.Wrap(services.ErrConfiguration, "api", "verify", "engine and directory are required", nil)
	}
	uploaderID := strings.TrimSpace(req.UploaderID)
	if uploaderID == "" {
		return VerifyResponse{}, verification.Verdict{}, services.Wrap(services.ErrValidation, "api", "verify", "uploader id is required", nil)
	}
	if len(req.Audio) > MaxAudioBytes {
		return VerifyResponse{}, verification.Verdict{}, services.Wrap(services.ErrValidation, "api", "verify",
			fmt.Sprintf("audio exceeds %d bytes", MaxAudioBytes), nil)
	}
	uploader, err := uploaders.Get(ctx, uploaderID)
	if err != nil {
		return VerifyResponse{}, verification.Verdict{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(req.FileName), filepath.Ext(req.FileName))
	}
	verdict, err := engine.VerifyUpload(ctx, verification.UploadRequest{
		UploadID:          req.UploadID,
		Title:             title,
		Audio:             req.Audio,
		OriginalFileName:  req.FileName,
		UploaderID:        uploader.ID,
		UploaderName:      uploader.DisplayName,
		UploaderVerified:  uploader.Verified,
		UploaderCreatedAt: uploader.CreatedAt,
		AdminOnBehalf:     req.AdminOnBehalf,
		FeaturedArtists:   compactNames(req.Featured),
	})
	if err != nil {
		return VerifyResponse{}, verification.Verdict{}, err
	}
	resp := FromVerdict(verdict)
	item := FromIdentity(uploader)
	resp.Uploader = &item
	resp.Featured = compactNames(req.Featured)
	return resp, verdict, nil
}

// VerifyFileRequest captures the inputs for verifying a file on disk.
type VerifyFileRequest struct {
	Config        *config.Config
	Path          string
	Title         string
	UploaderID    string
	AdminOnBehalf bool
	Featured      []string
	Logger        *slog.Logger
	EngineOptions []EngineOption
}

// VerifyFile opens the directory, builds the engine and verifies one file.
func VerifyFile(ctx context.Context, req VerifyFileRequest) (VerifyResponse, error) {
	cfg := req.Config
	if cfg == nil {
		return VerifyResponse{}, fmt.Errorf("configuration is required")
	}
	logger := req.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	path := strings.TrimSpace(req.Path)
	info, err := os.Stat(path)
	if err != nil {
		return VerifyResponse{}, services.Wrap(services.ErrValidation, "api", "verify file", "audio file not readable", err)
	}
	if info.IsDir() {
		return VerifyResponse{}, services.Wrap(services.ErrValidation, "api", "verify file", fmt.Sprintf("%s is a directory", path), nil)
	}
	if info.Size() > MaxAudioBytes {
		return VerifyResponse{}, services.Wrap(services.ErrValidation, "api", "verify file",
			fmt.Sprintf("audio exceeds %d bytes", MaxAudioBytes), nil)
	}
	audio, err := os.ReadFile(path)
	if err != nil {
		return VerifyResponse{}, fmt.Errorf("read audio: %w", err)
	}

	store, err := artists.Open(cfg)
	if err != nil {
		return VerifyResponse{}, fmt.Errorf("open artist directory: %w", err)
	}
	defer store.Close()

	engine, err := NewEngine(cfg, store, logger, req.EngineOptions...)
	if err != nil {
		return VerifyResponse{}, err
	}
	resp, _, err := VerifyUpload(ctx, engine, store, VerifyUploadRequest{
		Title:         req.Title,
		FileName:      filepath.Base(path),
		Audio:         audio,
		UploaderID:    req.UploaderID,
		AdminOnBehalf: req.AdminOnBehalf,
		Featured:      req.Featured,
	})
	return resp, err
}

func compactNames(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
