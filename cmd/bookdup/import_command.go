package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dump.json>",
		Short: "Import a catalog dump",
		Long: "Import a catalog dump (a JSON array of records). Formats that name a\n" +
			"file path but carry no fingerprint are hashed during import.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open dump: %w", err)
			}
			defer file.Close()

			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				imported, err := cat.ImportJSON(cmd.Context(), file)
				if err != nil {
					return err
				}
				ctx.log().Info("catalog dump imported", "path", path, "records", imported)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s) from %s\n", imported, path)
				return nil
			})
		},
	}
}
