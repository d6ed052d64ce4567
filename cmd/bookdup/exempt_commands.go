package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/exemption"
	"bookdup/internal/prefs"
)

func newExemptCommand(ctx *commandContext) *cobra.Command {
	exemptCmd := &cobra.Command{
		Use:   "exempt",
		Short: "Manage the duplicate exemption list",
		Long: "Manage the exemption list that silences known false positives.\n" +
			"Exempt records stay out of the groups they were filed under; they can\n" +
			"still appear in groups with other keys.",
	}

	exemptCmd.AddCommand(newExemptListCommand(ctx))
	exemptCmd.AddCommand(newExemptAddCommand(ctx))
	exemptCmd.AddCommand(newExemptRemoveCommand(ctx))
	exemptCmd.AddCommand(newExemptClearCommand(ctx))
	exemptCmd.AddCommand(newExemptPruneCommand(ctx))

	return exemptCmd
}

func newExemptListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exemption buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				store := exemption.Load(cmd.Context(), p)
				buckets := store.Buckets()

				if jsonOutput {
					return writeJSON(cmd, buckets)
				}

				out := cmd.OutOrStdout()
				if len(buckets) == 0 {
					fmt.Fprintln(out, "No exemptions recorded")
					return nil
				}

				rows := make([][]string, 0, len(buckets))
				for _, bucket := range buckets {
					rows = append(rows, []string{
						bucket.Key,
						strconv.Itoa(len(bucket.Members)),
						formatIDs(bucket.Members),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{textCol("Key"), numCol("Members"), textCol("Record IDs")},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the buckets as JSON")
	return cmd
}

func newExemptAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <key> <id>...",
		Short: "Exempt records under a group key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}

			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				for _, id := range ids {
					exists, err := cat.HasID(cmd.Context(), id)
					if err != nil {
						return err
					}
					if !exists {
						return fmt.Errorf("record %d does not exist", id)
					}
				}

				store := exemption.Load(cmd.Context(), p)
				store.MarkAllCurrent(key, ids)
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exempted %d record(s) under %q\n", len(ids), key)
				return nil
			})
		},
	}
}

func newExemptRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key> <id>...",
		Short: "Drop exemptions under a group key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			ids, err := parseIDs(args[1:])
			if err != nil {
				return err
			}

			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				store := exemption.Load(cmd.Context(), p)
				for _, id := range ids {
					store.Remove(key, id)
				}
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d exemption(s) under %q\n", len(ids), key)
				return nil
			})
		},
	}
}

func newExemptClearCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every exemption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				store := exemption.Load(cmd.Context(), p)
				if store.Len() == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No exemptions recorded")
					return nil
				}

				ok, err := confirmAction(cmd, p, "exempt-clear",
					fmt.Sprintf("Drop all %d exemption(s)?", store.Len()), assumeYes)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Clear cancelled")
					return nil
				}

				removed := store.Clear()
				if err := store.Save(cmd.Context(), p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dropped %d exemption(s)\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newExemptPruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop exemptions for records no longer in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				store := exemption.Load(cmd.Context(), p)

				var checkErr error
				dropped := store.Prune(func(id int64) bool {
					if checkErr != nil {
						return true
					}
					exists, err := cat.HasID(cmd.Context(), id)
					if err != nil {
						checkErr = err
						return true
					}
					return exists
				})
				if checkErr != nil {
					return checkErr
				}

				if dropped > 0 {
					if err := store.Save(cmd.Context(), p); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d stale exemption(s)\n", dropped)
				return nil
			})
		},
	}
}
