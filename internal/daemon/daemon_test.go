package daemon

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestDaemonRunServesUntilCancelled(t *testing.T) {
	d, _, _ := newTestDaemon(t, `{"status":"success","result":null}`)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	var addr string
	deadline := time.Now().Add(5 * time.Second)
	for addr == "" && time.Now().Before(deadline) {
		addr = d.Address()
		if addr == "" {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if addr == "" {
		cancel()
		t.Fatal("server never bound a listener")
	}

	resp, err := http.Get("http://" + addr + "/api/health")
	if err != nil {
		cancel()
		t.Fatalf("health request: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if d.Status(context.Background()).Running {
		t.Fatal("daemon still reports running after shutdown")
	}
}

func TestDaemonStartRejectsSecondInstance(t *testing.T) {
	d, cfg, _ := newTestDaemon(t, `{"status":"success","result":null}`)

	other := flock.New(cfg.LockPath())
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock failed: locked=%v err=%v", locked, err)
	}
	t.Cleanup(func() { _ = other.Unlock() })

	err = d.Start()
	if err == nil {
		d.Stop()
		t.Fatal("expected lock conflict")
	}
	if !strings.Contains(err.Error(), "already running") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDaemonStartStopReleasesLock(t *testing.T) {
	d, cfg, _ := newTestDaemon(t, `{"status":"success","result":null}`)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(); err == nil {
		t.Fatal("second Start should fail while running")
	}
	status := d.Status(context.Background())
	if !status.Running || status.LockFilePath != cfg.LockPath() || status.Address == "" {
		t.Fatalf("unexpected status: %+v", status)
	}
	d.Stop()

	other := flock.New(cfg.LockPath())
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("lock not released: locked=%v err=%v", locked, err)
	}
	_ = other.Unlock()
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}
