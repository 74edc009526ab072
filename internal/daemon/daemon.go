package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"soundguard/internal/api"
	"soundguard/internal/artists"
	"soundguard/internal/config"
	"soundguard/internal/logging"
	"soundguard/internal/preflight"
)

// Daemon owns the HTTP server lifecycle and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *artists.Store
	server *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	PID           int
	Address       string
	DirectoryPath string
	LockFilePath  string
	Checks        []preflight.Result
}

// New constructs a daemon around an opened directory store and engine.
func New(cfg *config.Config, store *artists.Store, engine api.Verifier, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || engine == nil {
		return nil, errors.New("daemon requires config, artist store, and verification engine")
	}
	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	d.server = newAPIServer(cfg, d, engine, logger)
	return d, nil
}

// Start acquires the instance lock and binds the API listener.
func (d *Daemon) Start() error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}
	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another soundguard server is already running")
	}
	if err := d.server.listen(); err != nil {
		_ = d.lock.Unlock()
		return err
	}
	d.running.Store(true)
	d.logger.Info("soundguard server started",
		logging.String("lock", d.lockPath),
		logging.String("address", d.server.address()),
	)
	return nil
}

// Run starts the daemon and serves until ctx is cancelled or the server fails.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Stop()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return d.server.serve()
	})
	group.Go(func() error {
		<-groupCtx.Done()
		d.server.shutdown()
		return nil
	})
	if err := group.Wait(); err != nil {
		return err
	}
	return nil
}

// Stop shuts the server down and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	d.server.shutdown()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_unlock_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file if no server is running"),
		)
	}
	d.running.Store(false)
	d.logger.Info("soundguard server stopped")
}

// Close stops the daemon and closes the directory store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports runtime information including local readiness checks.
func (d *Daemon) Status(ctx context.Context) Status {
	return Status{
		Running:       d.running.Load(),
		PID:           os.Getpid(),
		Address:       d.server.address(),
		DirectoryPath: d.store.Path(),
		LockFilePath:  d.lockPath,
		Checks:        preflight.RunLocal(ctx, d.cfg),
	}
}

// Address returns the bound listener address once started.
func (d *Daemon) Address() string {
	return d.server.address()
}
