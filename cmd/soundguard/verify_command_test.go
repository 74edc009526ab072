package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"soundguard/internal/api"
	"soundguard/internal/verification"
)

func writeTrack(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "Hello.mp3")
	if err := os.WriteFile(path, []byte("ID3 fake audio"), 0o644); err != nil {
		t.Fatalf("write track: %v", err)
	}
	return path
}

func seedDirectory(t *testing.T, env *cliEnv) {
	t.Helper()
	env.mustRun(t, "artists", "add", "--id", "adele", "--verified", "Adele")
	env.mustRun(t, "artists", "add", "--id", "adele-s", "--verified", "Adele S")
}

func TestVerifyCommandOwnerIsSafe(t *testing.T) {
	srv := recognitionServer(t, `{"status":"success","result":{"title":"Hello","artist":"Adele","album":"25"}}`)
	env := setupCLIEnv(t, srv.URL)
	seedDirectory(t, env)

	out, err := env.run(t, "verify", "--uploader", "adele", writeTrack(t, env.baseDir))
	if err != nil {
		t.Fatalf("verify: %v\n%s", err, out)
	}
	for _, want := range []string{"Safe:", "Owner Confirmed", "Hello by Adele (25)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVerifyCommandBlocksImpersonation(t *testing.T) {
	srv := recognitionServer(t, `{"status":"success","result":{"title":"Hello","artist":"Adele"}}`)
	env := setupCLIEnv(t, srv.URL)
	seedDirectory(t, env)

	out, err := env.run(t, "verify", "--uploader", "adele-s", "--json", writeTrack(t, env.baseDir))
	var blocked *blockedError
	if !errors.As(err, &blocked) || blocked.outcome != verification.OutcomeBlocked {
		t.Fatalf("expected blocked error, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("exit code = %d, want 2", exitCode(err))
	}
	var resp api.VerifyResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode verify json: %v\n%s", err, out)
	}
	if resp.Canonical == nil || resp.Canonical.ID != "adele" {
		t.Fatalf("expected canonical owner adele, got %+v", resp.Canonical)
	}
}

func TestVerifyCommandServiceError(t *testing.T) {
	srv := recognitionServer(t, `{"status":"error","error":{"error_code":901,"error_message":"limit reached"}}`)
	env := setupCLIEnv(t, srv.URL)
	seedDirectory(t, env)

	out, err := env.run(t, "verify", "--uploader", "adele", writeTrack(t, env.baseDir))
	if exitCode(err) != 3 {
		t.Fatalf("exit code = %d (err %v)", exitCode(err), err)
	}
	if !strings.Contains(out, "Service Error:") || !strings.Contains(out, "Attempts") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestVerifyCommandUnknownUploader(t *testing.T) {
	srv := recognitionServer(t, `{"status":"success","result":null}`)
	env := setupCLIEnv(t, srv.URL)

	_, err := env.run(t, "verify", "--uploader", "ghost", writeTrack(t, env.baseDir))
	if err == nil || exitCode(err) != 1 {
		t.Fatalf("expected not-found failure, got %v", err)
	}
}

func TestVerifyCommandRequiresUploader(t *testing.T) {
	env := setupCLIEnv(t, "")
	if _, err := env.run(t, "verify", writeTrack(t, env.baseDir)); err == nil {
		t.Fatal("expected missing --uploader to fail")
	}
}
