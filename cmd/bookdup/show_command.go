package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/language"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var (
		scope      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show catalog records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				if len(args) == 1 {
					ids, err := parseIDs(args)
					if err != nil {
						return err
					}
					book, err := cat.GetByID(cmd.Context(), ids[0])
					if err != nil {
						return err
					}
					if book == nil {
						return fmt.Errorf("record %d does not exist", ids[0])
					}
					if jsonOutput {
						return writeJSON(cmd, book)
					}
					printBook(cmd, book)
					return nil
				}

				books, err := cat.Snapshot(cmd.Context(), scope)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, books)
				}

				out := cmd.OutOrStdout()
				if len(books) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				rows := make([][]string, 0, len(books))
				for i := range books {
					book := &books[i]
					rows = append(rows, []string{
						strconv.FormatInt(book.ID, 10),
						book.Title,
						joinAuthors(book.Authors),
						languageLabel(book.Language),
						strconv.Itoa(len(book.Formats)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{numCol("ID"), wideCol("Title"), wideCol("Authors"), textCol("Language"), numCol("Formats")},
					rows,
				))
				fmt.Fprintf(out, "%d record(s)\n", len(books))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Restrict to records whose title or author contains this text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit records as JSON")

	return cmd
}

func languageLabel(code string) string {
	if code == "" {
		return ""
	}
	return language.DisplayName(code)
}

func printBook(cmd *cobra.Command, book *catalog.Book) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Record %d\n", book.ID)
	fmt.Fprintf(out, "  Title:     %s\n", book.Title)
	if len(book.Authors) > 0 {
		fmt.Fprintf(out, "  Authors:   %s\n", joinAuthors(book.Authors))
	}
	if book.Language != "" {
		fmt.Fprintf(out, "  Language:  %s\n", language.DisplayName(book.Language))
	}
	if book.Series != "" {
		fmt.Fprintf(out, "  Series:    %s\n", book.Series)
	}
	if book.Publisher != "" {
		fmt.Fprintf(out, "  Publisher: %s\n", book.Publisher)
	}
	for idType, value := range book.Identifiers {
		fmt.Fprintf(out, "  %s: %s\n", idType, value)
	}
	for _, format := range book.Formats {
		fmt.Fprintf(out, "  Format:    %s", format.Name)
		if format.Fingerprint != "" {
			fmt.Fprintf(out, " (%s)", format.Fingerprint)
		}
		fmt.Fprintln(out)
	}
}
