package report_test

import (
	"os"
	"strings"
	"testing"

	"bookdup/internal/catalog"
	"bookdup/internal/dupes"
	"bookdup/internal/match"
	"bookdup/internal/report"
	"bookdup/internal/variations"
)

func sampleRule() match.Rule {
	return match.Rule{
		Mode:        match.ModeTitleAuthor,
		TitleLevel:  match.LevelSimilar,
		AuthorLevel: match.LevelSimilar,
		MultiAuthor: match.PolicyAny,
	}
}

func TestBuildDuplicatesResolvesMembers(t *testing.T) {
	books := []catalog.Book{
		{ID: 1, Title: "The Hobbit", Authors: []string{"J.R.R. Tolkien"}},
		{ID: 2, Title: "the hobbit", Authors: []string{"Tolkien, J.R.R."}},
		{ID: 3, Title: "Emma"},
	}
	groups := []dupes.Group{
		{Key: "title:hobbit", Reason: match.ReasonTitleAuthor, Members: []int64{1, 2}},
	}

	run := report.BuildDuplicates(books, sampleRule(), groups, "hobbit", false)
	if run.RunID == "" || run.GeneratedAt.IsZero() {
		t.Fatal("expected run id and timestamp")
	}
	if run.Scope != "hobbit" {
		t.Fatalf("unexpected scope: %q", run.Scope)
	}
	if run.Summary.Records != 3 || run.Summary.Groups != 1 || run.Summary.DuplicateRecords != 2 {
		t.Fatalf("unexpected summary: %#v", run.Summary)
	}
	if len(run.Groups) != 1 || len(run.Groups[0].Members) != 2 {
		t.Fatalf("unexpected groups: %#v", run.Groups)
	}
	if run.Groups[0].Members[0].Title != "The Hobbit" {
		t.Fatalf("member not resolved: %#v", run.Groups[0].Members[0])
	}
}

func TestBuildDuplicatesSortsByTitle(t *testing.T) {
	books := []catalog.Book{
		{ID: 1, Title: "Zorro"},
		{ID: 2, Title: "zorro"},
		{ID: 3, Title: "Alpha"},
		{ID: 4, Title: "alpha"},
	}
	groups := []dupes.Group{
		{Key: "title:zorro", Members: []int64{1, 2}},
		{Key: "title:alpha", Members: []int64{3, 4}},
	}

	run := report.BuildDuplicates(books, sampleRule(), groups, "", true)
	if run.Groups[0].Key != "title:alpha" {
		t.Fatalf("expected alpha group first, got %q", run.Groups[0].Key)
	}
}

func TestDuplicatesSaveLog(t *testing.T) {
	books := []catalog.Book{
		{ID: 1, Title: "Emma", Authors: []string{"Jane Austen"}},
		{ID: 2, Title: "emma", Authors: []string{"Austen, Jane"}},
	}
	groups := []dupes.Group{
		{Key: "title:emma", Reason: match.ReasonTitleAuthor, Members: []int64{1, 2}},
	}

	run := report.BuildDuplicates(books, sampleRule(), groups, "", false)
	path, err := run.SaveLog(t.TempDir())
	if err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(contents)
	for _, want := range []string{run.RunID, "title:emma", "#1 Emma", "Jane Austen"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestVariationsSaveLogWithBookIDs(t *testing.T) {
	groups := []variations.Group{
		{
			Key:       "twain mark",
			Canonical: "Mark Twain",
			Values: []variations.Value{
				{Raw: "Mark Twain", Count: 2},
				{Raw: "Twain, Mark", Count: 1},
			},
		},
	}

	run := report.BuildVariations("author", variations.LevelSimilar, groups)
	run.AttachBookIDs(func(raw string) []int64 {
		if raw == "Twain, Mark" {
			return []int64{7}
		}
		return nil
	})

	path, err := run.SaveLog(t.TempDir())
	if err != nil {
		t.Fatalf("SaveLog failed: %v", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(contents)
	if !strings.Contains(text, "suggested: Mark Twain") {
		t.Fatalf("report missing canonical suggestion:\n%s", text)
	}
	if !strings.Contains(text, "books=[7]") {
		t.Fatalf("report missing book ids:\n%s", text)
	}
}
