// Package report materializes search results for presentation and export.
// The grouping engine speaks in record ids; reports resolve them back to
// titles and authors, stamp the run with an id and timestamp, and render a
// plain-text log the CLI can save under the report directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookdup/internal/catalog"
	"bookdup/internal/dupes"
	"bookdup/internal/match"
	"bookdup/internal/variations"
)

// Member is one record inside a duplicate group, resolved for display.
type Member struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors,omitempty"`
}

// GroupDetail is a duplicate group with its members resolved.
type GroupDetail struct {
	Key       string             `json:"key"`
	Reason    match.Reason       `json:"reason"`
	Members   []Member           `json:"members"`
	Removable []dupes.FormatCopy `json:"removable,omitempty"`
}

// Summary carries the counts shown at the end of every search.
type Summary struct {
	Records          int `json:"records"`
	Groups           int `json:"groups"`
	DuplicateRecords int `json:"duplicate_records"`
}

// Duplicates is one duplicate search run, ready for output.
type Duplicates struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Rule        string        `json:"rule"`
	Scope       string        `json:"scope,omitempty"`
	Summary     Summary       `json:"summary"`
	Groups      []GroupDetail `json:"groups"`
}

// BuildDuplicates resolves the engine's groups against the snapshot. When
// sortByTitle is set, groups order by their first member's title instead of
// snapshot order.
func BuildDuplicates(books []catalog.Book, rule match.Rule, groups []dupes.Group, scope string, sortByTitle bool) *Duplicates {
	byID := make(map[int64]*catalog.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	details := make([]GroupDetail, 0, len(groups))
	duplicates := 0
	for _, group := range groups {
		detail := GroupDetail{
			Key:       group.Key,
			Reason:    group.Reason,
			Removable: group.Removable,
		}
		for _, id := range group.Members {
			member := Member{ID: id}
			if book := byID[id]; book != nil {
				member.Title = book.Title
				member.Authors = book.Authors
			}
			detail.Members = append(detail.Members, member)
		}
		duplicates += len(detail.Members)
		details = append(details, detail)
	}

	if sortByTitle {
		sort.SliceStable(details, func(i, j int) bool {
			return strings.ToLower(firstTitle(details[i])) < strings.ToLower(firstTitle(details[j]))
		})
	}

	return &Duplicates{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Rule:        rule.Describe(),
		Scope:       scope,
		Summary: Summary{
			Records:          len(books),
			Groups:           len(details),
			DuplicateRecords: duplicates,
		},
		Groups: details,
	}
}

func firstTitle(detail GroupDetail) string {
	if len(detail.Members) == 0 {
		return ""
	}
	return detail.Members[0].Title
}

// SaveLog renders the run as plain text under dir and returns the file path.
func (d *Duplicates) SaveLog(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("duplicates-%s-%s.txt",
		d.GeneratedAt.Format("20060102-150405"), shortID(d.RunID)))
	return path, writeLog(path, d.renderText())
}

func (d *Duplicates) renderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bookdup duplicate search %s\n", d.RunID)
	fmt.Fprintf(&b, "generated: %s\n", d.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "rule: %s\n", d.Rule)
	if d.Scope != "" {
		fmt.Fprintf(&b, "scope: %s\n", d.Scope)
	}
	fmt.Fprintf(&b, "records: %d, groups: %d, duplicate records: %d\n",
		d.Summary.Records, d.Summary.Groups, d.Summary.DuplicateRecords)

	for i, group := range d.Groups {
		fmt.Fprintf(&b, "\ngroup %d (%s) [%s]\n", i+1, group.Reason, group.Key)
		for _, member := range group.Members {
			line := fmt.Sprintf("  #%d %s", member.ID, member.Title)
			if len(member.Authors) > 0 {
				line += " — " + strings.Join(member.Authors, "; ")
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		for _, copy := range group.Removable {
			fmt.Fprintf(&b, "  removable: #%d %s (%s)\n", copy.BookID, copy.Format, copy.Fingerprint)
		}
	}
	return b.String()
}

// VariationGroup pairs a variation group with the record ids carrying each
// value, filled only when the caller asks for them.
type VariationGroup struct {
	variations.Group
	BookIDs map[string][]int64 `json:"book_ids,omitempty"`
}

// Variations is one variation search run, ready for output.
type Variations struct {
	RunID       string           `json:"run_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Field       string           `json:"field"`
	Level       string           `json:"level"`
	Groups      []VariationGroup `json:"groups"`
}

// BuildVariations stamps a variation run for output.
func BuildVariations(field string, level variations.Level, groups []variations.Group) *Variations {
	if level == "" {
		level = variations.LevelSimilar
	}
	wrapped := make([]VariationGroup, 0, len(groups))
	for _, group := range groups {
		wrapped = append(wrapped, VariationGroup{Group: group})
	}
	return &Variations{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Field:       field,
		Level:       string(level),
		Groups:      wrapped,
	}
}

// AttachBookIDs records which catalog records carry each raw value so the
// output can show the affected books.
func (v *Variations) AttachBookIDs(lookup func(raw string) []int64) {
	for i := range v.Groups {
		ids := make(map[string][]int64)
		for _, value := range v.Groups[i].Values {
			if found := lookup(value.Raw); len(found) > 0 {
				ids[value.Raw] = found
			}
		}
		if len(ids) > 0 {
			v.Groups[i].BookIDs = ids
		}
	}
}

// SaveLog renders the run as plain text under dir and returns the file path.
func (v *Variations) SaveLog(dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("variations-%s-%s-%s.txt",
		v.Field, v.GeneratedAt.Format("20060102-150405"), shortID(v.RunID)))
	return path, writeLog(path, v.renderText())
}

func (v *Variations) renderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bookdup %s variations %s\n", v.Field, v.RunID)
	fmt.Fprintf(&b, "generated: %s\n", v.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "level: %s, groups: %d\n", v.Level, len(v.Groups))

	for i, group := range v.Groups {
		fmt.Fprintf(&b, "\ngroup %d [%s] suggested: %s\n", i+1, group.Key, group.Canonical)
		for _, value := range group.Values {
			fmt.Fprintf(&b, "  %q x%d", value.Raw, value.Count)
			if ids := group.BookIDs[value.Raw]; len(ids) > 0 {
				fmt.Fprintf(&b, " books=%v", ids)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func writeLog(path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
