package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"soundguard/internal/artists"
	"soundguard/internal/config"
	"soundguard/internal/recognition"
)

// CheckRecognition verifies the recognition endpoint answers HTTP. It uses a
// 10-second timeout and a single request with no retries.
func CheckRecognition(ctx context.Context, cfg config.Recognition) Result {
	const name = "Recognition service"

	if strings.TrimSpace(cfg.APIToken) == "" {
		return Result{Name: name, Detail: "API token missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	service := recognition.NewAudDService(cfg.APIToken, cfg.BaseURL, 10*time.Second)
	if err := service.Ping(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeRecognitionError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", cfg.BaseURL)}
}

// CheckArtistDirectory opens the directory database and counts verified
// artists. An empty directory passes with a warning detail since every
// verified upload would then resolve to the uploader.
func CheckArtistDirectory(ctx context.Context, path string) Result {
	const name = "Artist directory"

	store, err := artists.OpenPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	verified, err := store.List(ctx, true)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if len(verified) == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (no verified artists yet)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d verified artists)", path, len(verified))}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeRecognitionError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (recognition API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (recognition API unreachable)"
	}
	return err.Error()
}
