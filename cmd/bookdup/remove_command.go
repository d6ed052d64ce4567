package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/prefs"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "remove <id>...",
		Short: "Delete records from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				ok, err := confirmAction(cmd, p, "remove",
					fmt.Sprintf("Delete %d record(s) from the catalog?", len(ids)), assumeYes)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Remove cancelled")
					return nil
				}

				removed := 0
				for _, id := range ids {
					gone, err := cat.Remove(cmd.Context(), id)
					if err != nil {
						return err
					}
					if !gone {
						fmt.Fprintf(cmd.OutOrStdout(), "Record %d does not exist\n", id)
						continue
					}
					removed++
				}
				ctx.log().Info("records removed", "requested", len(ids), "removed", removed)
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d record(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
