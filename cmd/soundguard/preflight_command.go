package main

import (
	"errors"

	"github.com/spf13/cobra"

	"soundguard/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var localOnly bool

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Check directories, the artist database and recognition service reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var results []preflight.Result
			if localOnly {
				results = preflight.RunLocal(cmd.Context(), cfg)
			} else {
				results = preflight.RunAll(cmd.Context(), cfg)
			}
			out := cmd.OutOrStdout()
			renderPreflight(out, results, shouldColorize(out))
			if !preflight.AllPassed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&localOnly, "local", false, "Skip the recognition service check")
	return cmd
}
