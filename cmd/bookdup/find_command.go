package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/dupes"
	"bookdup/internal/exemption"
	"bookdup/internal/prefs"
	"bookdup/internal/report"
)

func newFindCommand(ctx *commandContext) *cobra.Command {
	var (
		scope      string
		jsonOutput bool
		saveLog    bool
		exemptAll  bool
		showAll    bool

		modeFlag       string
		identifierType string
		titleMatch     string
		authorMatch    string
		ignoreTitle    bool
		ignoreAuthor   bool
		includeLangs   bool
		multiAuthor    string
		autoRemove     bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search the catalog for duplicate groups",
		Long: "Search the catalog for duplicate groups using the configured match rule.\n" +
			"Flags override the [match] section for this run only.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStores(func(cfg *config.Config, cat *catalog.Store, p *prefs.Store) error {
				flags := cmd.Flags()
				if flags.Changed("mode") {
					cfg.Match.Mode = modeFlag
				}
				if flags.Changed("identifier-type") {
					cfg.Match.IdentifierType = identifierType
				}
				if flags.Changed("title-match") {
					cfg.Match.TitleMatch = titleMatch
				}
				if flags.Changed("author-match") {
					cfg.Match.AuthorMatch = authorMatch
				}
				if flags.Changed("ignore-title") {
					cfg.Match.IgnoreTitle = ignoreTitle
				}
				if flags.Changed("ignore-author") {
					cfg.Match.IgnoreAuthor = ignoreAuthor
				}
				if flags.Changed("include-languages") {
					cfg.Match.IncludeLanguages = includeLangs
				}
				if flags.Changed("multi-author") {
					cfg.Match.MultiAuthor = multiAuthor
				}
				if flags.Changed("auto-remove-binary") {
					cfg.Results.AutoRemoveBinary = autoRemove
				}
				if flags.Changed("show-all") {
					cfg.Results.ShowAllGroups = showAll
				}

				rule, err := cfg.Rule()
				if err != nil {
					return err
				}

				books, err := cat.Snapshot(cmd.Context(), scope)
				if err != nil {
					return err
				}

				// The persisted store stays authoritative for saves; --show-all
				// only swaps in an empty store for the filtering step.
				persisted := exemption.Load(cmd.Context(), p)
				filter := persisted
				if cfg.Results.ShowAllGroups {
					filter = exemption.New()
				}

				groups, err := dupes.Find(books, rule, filter, cfg.NormalizeOptions(), dupes.Options{
					BinaryAutoRemove: cfg.Results.AutoRemoveBinary,
					BinaryKeep:       dupes.KeepPolicy(cfg.Results.BinaryKeep),
				})
				if err != nil {
					return err
				}

				run := report.BuildDuplicates(books, rule, groups, scope, cfg.Results.SortGroupsByTitle)
				ctx.log().Info("duplicate search complete",
					"run_id", run.RunID,
					"rule", run.Rule,
					"records", run.Summary.Records,
					"groups", run.Summary.Groups)

				if exemptAll && len(groups) > 0 {
					for _, group := range groups {
						persisted.MarkAllCurrent(group.Key, group.Members)
					}
					if err := persisted.Save(cmd.Context(), p); err != nil {
						return fmt.Errorf("save exemptions: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Exempted %d group(s)\n", len(groups))
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
				return printDuplicates(cmd, run)
			})
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Restrict the search to records whose title or author contains this text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run as JSON")
	cmd.Flags().BoolVar(&saveLog, "save-log", false, "Save a plain-text report under the report directory")
	cmd.Flags().BoolVar(&exemptAll, "exempt-all", false, "Mark every found group as exempt")
	cmd.Flags().BoolVar(&showAll, "show-all", false, "Include groups silenced by exemptions")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "Comparison mode: title_author, identifier, or binary")
	cmd.Flags().StringVar(&identifierType, "identifier-type", "", "Identifier field for identifier mode (e.g. isbn)")
	cmd.Flags().StringVar(&titleMatch, "title-match", "", "Title level: identical, similar, soundex, or fuzzy")
	cmd.Flags().StringVar(&authorMatch, "author-match", "", "Author level: identical, similar, soundex, or fuzzy")
	cmd.Flags().BoolVar(&ignoreTitle, "ignore-title", false, "Compare authors only")
	cmd.Flags().BoolVar(&ignoreAuthor, "ignore-author", false, "Compare titles only")
	cmd.Flags().BoolVar(&includeLangs, "include-languages", false, "Treat records in different languages as distinct")
	cmd.Flags().StringVar(&multiAuthor, "multi-author", "", "Author agreement for multi-author records: any or all")
	cmd.Flags().BoolVar(&autoRemove, "auto-remove-binary", false, "Flag surplus format copies in binary groups")

	return cmd
}

func printDuplicates(cmd *cobra.Command, run *report.Duplicates) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rule: %s\n", run.Rule)
	if run.Scope != "" {
		fmt.Fprintf(out, "Scope: %s\n", run.Scope)
	}

	if len(run.Groups) == 0 {
		fmt.Fprintf(out, "No duplicate groups found across %d record(s)\n", run.Summary.Records)
		return nil
	}

	rows := make([][]string, 0, run.Summary.DuplicateRecords)
	for i, group := range run.Groups {
		for _, member := range group.Members {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				string(group.Reason),
				strconv.FormatInt(member.ID, 10),
				member.Title,
				joinAuthors(member.Authors),
			})
		}
	}
	fmt.Fprintln(out, renderTable(
		[]column{numCol("Group"), textCol("Reason"), numCol("ID"), wideCol("Title"), wideCol("Authors")},
		rows,
	))

	for i, group := range run.Groups {
		for _, copy := range group.Removable {
			fmt.Fprintf(out, "group %d removable copy: record %d format %s\n", i+1, copy.BookID, copy.Format)
		}
	}

	fmt.Fprintf(out, "%d group(s), %d duplicate record(s) across %d record(s)\n",
		run.Summary.Groups, run.Summary.DuplicateRecords, run.Summary.Records)
	return nil
}
