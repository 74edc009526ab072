package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"soundguard/internal/api"
	"soundguard/internal/artists"
)

func newArtistsCommand(ctx *commandContext) *cobra.Command {
	artistsCmd := &cobra.Command{
		Use:   "artists",
		Short: "Administer the verified-artist directory",
	}
	artistsCmd.AddCommand(newArtistsAddCommand(ctx))
	artistsCmd.AddCommand(newArtistsListCommand(ctx))
	artistsCmd.AddCommand(newArtistsRemoveCommand(ctx))
	return artistsCmd
}

func newArtistsAddCommand(ctx *commandContext) *cobra.Command {
	var id string
	var verified bool

	cmd := &cobra.Command{
		Use:   "add <display-name>",
		Short: "Add or update a directory entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			return ctx.withStore(func(store *artists.Store) error {
				item, err := api.NewArtistService(store).Add(cmd.Context(), api.AddArtistRequest{
					ID:          id,
					DisplayName: name,
					Verified:    verified,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved artist %s (%s, verified: %s)\n", item.DisplayName, item.ID, yesNo(item.Verified))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Directory id (generated when omitted)")
	cmd.Flags().BoolVar(&verified, "verified", false, "Mark the artist as verified")
	return cmd
}

func newArtistsListCommand(ctx *commandContext) *cobra.Command {
	var verifiedOnly bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List directory entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *artists.Store) error {
				items, err := api.NewArtistService(store).List(cmd.Context(), verifiedOnly)
				if err != nil {
					return err
				}
				if jsonOutput {
					if items == nil {
						items = []api.ArtistItem{}
					}
					return writeJSON(cmd, api.ArtistListResponse{Artists: items})
				}
				renderArtists(cmd.OutOrStdout(), items)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&verifiedOnly, "verified", false, "Only list verified artists")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newArtistsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove directory entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *artists.Store) error {
				removed, missing, err := api.NewArtistService(store).Remove(cmd.Context(), args...)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Removed %d artist(s)\n", removed)
				if len(missing) > 0 {
					fmt.Fprintf(out, "Not found: %s\n", strings.Join(missing, ", "))
				}
				return nil
			})
		},
	}
}
