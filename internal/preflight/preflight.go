package preflight

import (
	"context"
	"os"
	"strings"

	"soundguard/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunLocal executes the checks that need no network access: state, log and
// scratch directories plus the artist directory database.
func RunLocal(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
	}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckDirectoryAccess("Scratch directory", scratchDir(cfg)))
	results = append(results, CheckArtistDirectory(ctx, cfg.Directory.Path))
	return results
}

// RunAll executes the local checks followed by the recognition reachability
// check.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := RunLocal(ctx, cfg)
	return append(results, CheckRecognition(ctx, cfg.Recognition))
}

func scratchDir(cfg *config.Config) string {
	if dir := strings.TrimSpace(cfg.Paths.TempDir); dir != "" {
		return dir
	}
	return os.TempDir()
}
