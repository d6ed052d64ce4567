package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/normalize"
	"bookdup/internal/prefs"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "rename <author|series|publisher|tag> <from> <to>",
		Short: "Rewrite every occurrence of a field value",
		Long: "Rewrite every occurrence of a field value to a canonical spelling,\n" +
			"typically one suggested by `bookdup variations`.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := normalize.ParseFieldKind(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q (expected author, series, publisher, or tag)", args[0])
			}
			from, to := args[1], args[2]

			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				ok, err := confirmAction(cmd, p, "rename",
					fmt.Sprintf("Rename %s %q to %q everywhere?", kind, from, to), assumeYes)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Rename cancelled")
					return nil
				}

				touched, err := cat.RenameFieldValue(cmd.Context(), kind, from, to)
				if err != nil {
					return err
				}
				ctx.log().Info("field value renamed",
					"field", string(kind), "from", from, "to", to, "records", touched)
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s %q to %q on %d record(s)\n", kind, from, to, touched)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
