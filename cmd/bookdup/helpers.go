package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"bookdup/internal/prefs"
)

// writeJSON backs every --json flag: the value goes to the command's stdout
// as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid record id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func joinAuthors(authors []string) string {
	return strings.Join(authors, "; ")
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// confirmAction asks before a destructive operation. The prompt can be
// suppressed permanently via the stored "don't ask again" flag or per
// invocation with --yes; non-interactive runs require --yes.
func confirmAction(cmd *cobra.Command, p *prefs.Store, name, question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if p != nil && !p.ConfirmAgain(cmd.Context(), name) {
		return true, nil
	}
	if !stdinIsTerminal() {
		return false, fmt.Errorf("%s requires confirmation; re-run with --yes", cmd.Name())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s [y/N/a(lways)]: ", question)

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "a", "always":
		if p != nil {
			if err := p.SetConfirmAgain(cmd.Context(), name, false); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}
