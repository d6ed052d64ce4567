package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var (
		authors     []string
		identifiers []string
		language    string
		series      string
		publisher   string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a record to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book := catalog.Book{
				Title:     strings.TrimSpace(args[0]),
				Authors:   authors,
				Language:  language,
				Series:    series,
				Publisher: publisher,
				Tags:      tags,
			}
			for _, pair := range identifiers {
				idType, value, found := strings.Cut(pair, "=")
				if !found || strings.TrimSpace(idType) == "" || strings.TrimSpace(value) == "" {
					return fmt.Errorf("invalid identifier %q (expected type=value, e.g. isbn=978...)", pair)
				}
				if book.Identifiers == nil {
					book.Identifiers = make(map[string]string)
				}
				book.Identifiers[strings.ToLower(strings.TrimSpace(idType))] = strings.TrimSpace(value)
			}

			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				added, err := cat.Add(cmd.Context(), &book)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added record %d: %s\n", added.ID, added.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&authors, "author", "a", nil, "Author (repeatable)")
	cmd.Flags().StringArrayVarP(&identifiers, "identifier", "i", nil, "Identifier as type=value (repeatable)")
	cmd.Flags().StringVar(&language, "language", "", "Language code or name")
	cmd.Flags().StringVar(&series, "series", "", "Series name")
	cmd.Flags().StringVar(&publisher, "publisher", "", "Publisher name")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag (repeatable)")

	return cmd
}
