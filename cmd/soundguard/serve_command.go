package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"soundguard/internal/api"
	"soundguard/internal/artists"
	"soundguard/internal/daemon"
	"soundguard/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP verification API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Paths.APIBind = bind
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			store, err := artists.Open(cfg)
			if err != nil {
				return fmt.Errorf("open artist directory: %w", err)
			}
			engine, err := api.NewEngine(cfg, store, logger)
			if err != nil {
				_ = store.Close()
				return err
			}
			d, err := daemon.New(cfg, store, engine, logger)
			if err != nil {
				_ = store.Close()
				return err
			}
			defer func() {
				if err := d.Close(); err != nil {
					logger.Warn("close artist directory", logging.Error(err))
				}
			}()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if cfg.Paths.APIToken == "" {
				logging.WarnWithContext(logger, "api token not configured; endpoints are unauthenticated", "api_auth_disabled",
					logging.String(logging.FieldErrorHint, "set paths.api_token or SOUNDGUARD_API_TOKEN"),
					logging.String(logging.FieldImpact, "any local client can submit verifications"),
				)
			}
			return d.Run(runCtx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Override the configured listen address")
	return cmd
}

