package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// WriteTemp creates a uniquely named file in dir (per os.CreateTemp pattern
// rules), writes data to it, and verifies the written size and SHA256 against
// the buffer. The file is removed on any failure.
func WriteTemp(dir, pattern string, data []byte) (string, error) {
	out, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	path := out.Name()

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, hasher), bytes.NewReader(data))
	if err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close: %w", err)
	}
	if err := verifyFile(path, written, hasher.Sum(nil), int64(len(data))); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

func verifyFile(path string, written int64, sum []byte, want int64) error {
	if written != want {
		return fmt.Errorf("size mismatch: buffer %d bytes, wrote %d bytes", want, written)
	}
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen: %w", err)
	}
	defer in.Close()

	reread := sha256.New()
	n, err := io.Copy(reread, in)
	if err != nil {
		return fmt.Errorf("reread: %w", err)
	}
	if n != want {
		return fmt.Errorf("size mismatch: buffer %d bytes, file %d bytes", want, n)
	}
	if !bytes.Equal(sum, reread.Sum(nil)) {
		return errors.New("hash mismatch: staged file corrupted")
	}
	return nil
}

// RemoveIfExists deletes path, treating an already missing file as success.
func RemoveIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
