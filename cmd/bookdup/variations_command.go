package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/normalize"
	"bookdup/internal/report"
	"bookdup/internal/variations"
)

func newVariationsCommand(ctx *commandContext) *cobra.Command {
	var (
		levelFlag  string
		jsonOutput bool
		saveLog    bool
		showBooks  bool
	)

	cmd := &cobra.Command{
		Use:   "variations <author|series|publisher|tag>",
		Short: "Find alternate spellings of a field's values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := normalize.ParseFieldKind(args[0])
			if !ok {
				return fmt.Errorf("unknown field %q (expected author, series, publisher, or tag)", args[0])
			}
			level := variations.LevelSimilar
			switch strings.ToLower(strings.TrimSpace(levelFlag)) {
			case "", "similar":
			case "soundex":
				level = variations.LevelSoundex
			default:
				return fmt.Errorf("unknown variation level %q (expected similar or soundex)", levelFlag)
			}

			return ctx.withCatalog(func(cfg *config.Config, cat *catalog.Store) error {
				values, err := cat.FieldValues(cmd.Context(), kind)
				if err != nil {
					return err
				}

				groups, err := variations.Find(values, kind, variations.Options{
					Level:         level,
					SoundexLength: cfg.FieldSoundexLength(kind),
					Normalize:     cfg.NormalizeOptions(),
				})
				if err != nil {
					return err
				}

				run := report.BuildVariations(string(kind), level, groups)
				ctx.log().Info("variation search complete",
					"run_id", run.RunID,
					"field", run.Field,
					"groups", len(run.Groups))

				if showBooks || cfg.Results.ShowVariationBooks {
					books, err := cat.Snapshot(cmd.Context(), "")
					if err != nil {
						return err
					}
					run.AttachBookIDs(func(raw string) []int64 {
						return recordsWithValue(books, kind, raw)
					})
				}

				if saveLog {
					path, err := run.SaveLog(cfg.Paths.ReportDir)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", path)
				}

				if jsonOutput {
					return writeJSON(cmd, run)
				}
				return printVariations(cmd, run)
			})
		},
	}

	cmd.Flags().StringVar(&levelFlag, "level", "similar", "Match level: similar or soundex")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run as JSON")
	cmd.Flags().BoolVar(&saveLog, "save-log", false, "Save a plain-text report under the report directory")
	cmd.Flags().BoolVar(&showBooks, "show-books", false, "List the record ids carrying each value")

	return cmd
}

func recordsWithValue(books []catalog.Book, kind normalize.FieldKind, raw string) []int64 {
	var ids []int64
	for i := range books {
		if bookHasValue(&books[i], kind, raw) {
			ids = append(ids, books[i].ID)
		}
	}
	return ids
}

func bookHasValue(book *catalog.Book, kind normalize.FieldKind, raw string) bool {
	switch kind {
	case normalize.FieldAuthor:
		for _, author := range book.Authors {
			if author == raw {
				return true
			}
		}
	case normalize.FieldSeries:
		return book.Series == raw
	case normalize.FieldPublisher:
		return book.Publisher == raw
	case normalize.FieldTag:
		for _, tag := range book.Tags {
			if tag == raw {
				return true
			}
		}
	}
	return false
}

func printVariations(cmd *cobra.Command, run *report.Variations) error {
	out := cmd.OutOrStdout()
	if len(run.Groups) == 0 {
		fmt.Fprintf(out, "No %s variations found\n", run.Field)
		return nil
	}

	rows := make([][]string, 0, len(run.Groups)*2)
	for i, group := range run.Groups {
		for _, value := range group.Values {
			suggested := ""
			if value.Raw == group.Canonical {
				suggested = "*"
			}
			row := []string{
				strconv.Itoa(i + 1),
				value.Raw,
				strconv.Itoa(value.Count),
				suggested,
			}
			if ids := group.BookIDs[value.Raw]; len(ids) > 0 {
				row = append(row, formatIDs(ids))
			} else {
				row = append(row, "")
			}
			rows = append(rows, row)
		}
	}
	fmt.Fprintln(out, renderTable(
		[]column{numCol("Group"), wideCol("Value"), numCol("Count"), textCol("Suggested"), textCol("Records")},
		rows,
	))
	fmt.Fprintf(out, "%d variation group(s); rename with `bookdup rename %s <from> <to>`\n", len(run.Groups), run.Field)
	return nil
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
