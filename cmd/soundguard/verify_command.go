package main

import (
	"github.com/spf13/cobra"

	"soundguard/internal/api"
	"soundguard/internal/verification"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var uploaderID string
	var title string
	var adminOnBehalf bool
	var featured []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "verify <audio-file>",
		Short: "Verify an audio file against the recognition service and artist directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			resp, err := api.VerifyFile(cmd.Context(), api.VerifyFileRequest{
				Config:        cfg,
				Path:          args[0],
				Title:         title,
				UploaderID:    uploaderID,
				AdminOnBehalf: adminOnBehalf,
				Featured:      featured,
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := writeJSON(cmd, resp); err != nil {
					return err
				}
			} else {
				renderVerdict(out, resp, shouldColorize(out))
			}
			if outcome := verification.Outcome(resp.Outcome); outcome != verification.OutcomeSafe {
				return &blockedError{outcome: outcome}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&uploaderID, "uploader", "u", "", "Directory id of the uploading artist")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Track title (defaults to the file name)")
	cmd.Flags().BoolVar(&adminOnBehalf, "admin", false, "Upload is performed by an administrator on the artist's behalf")
	cmd.Flags().StringSliceVar(&featured, "featured", nil, "Declared featured artists")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("uploader")
	return cmd
}
