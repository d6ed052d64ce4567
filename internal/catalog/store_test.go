package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bookdup/internal/catalog"
	"bookdup/internal/normalize"
	"bookdup/internal/testsupport"
)

func TestAddAndGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	added := testsupport.AddBook(t, store, catalog.Book{
		Title:       "The Hobbit",
		Authors:     []string{"J.R.R. Tolkien"},
		Identifiers: map[string]string{"isbn": "9780261102217"},
		Language:    "eng",
		Publisher:   "Allen & Unwin",
		Tags:        []string{"fantasy"},
		Formats:     []catalog.Format{{Name: "epub", Fingerprint: "abc123", Size: 4096}},
	})
	if added.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := store.GetByID(ctx, added.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	if got.Title != "The Hobbit" || got.Identifiers["isbn"] != "9780261102217" {
		t.Fatalf("unexpected record: %#v", got)
	}
	if !reflect.DeepEqual(got.Authors, []string{"J.R.R. Tolkien"}) {
		t.Fatalf("unexpected authors: %v", got.Authors)
	}
	if len(got.Formats) != 1 || got.Formats[0].Fingerprint != "abc123" {
		t.Fatalf("unexpected formats: %#v", got.Formats)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)

	got, err := store.GetByID(context.Background(), 9999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing record, got %#v", got)
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)

	if _, err := store.Add(context.Background(), &catalog.Book{Title: "   "}); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestSnapshotScopeFiltersTitleAndAuthor(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	testsupport.AddBook(t, store, catalog.Book{Title: "Emma", Authors: []string{"Jane Austen"}})
	testsupport.AddBook(t, store, catalog.Book{Title: "Dracula", Authors: []string{"Bram Stoker"}})
	testsupport.AddBook(t, store, catalog.Book{Title: "Persuasion", Authors: []string{"Jane Austen"}})

	all, err := store.Snapshot(ctx, "")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].ID > all[1].ID || all[1].ID > all[2].ID {
		t.Fatal("expected snapshot in insertion order")
	}

	scoped, err := store.Snapshot(ctx, "austen")
	if err != nil {
		t.Fatalf("scoped Snapshot failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 scoped records, got %d", len(scoped))
	}
	for _, book := range scoped {
		if book.Authors[0] != "Jane Austen" {
			t.Fatalf("unexpected scoped record: %#v", book)
		}
	}
}

func TestFieldValuesCountsAndOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	testsupport.AddBook(t, store, catalog.Book{Title: "A", Authors: []string{"Mark Twain"}})
	testsupport.AddBook(t, store, catalog.Book{Title: "B", Authors: []string{"Twain, Mark"}})
	testsupport.AddBook(t, store, catalog.Book{Title: "C", Authors: []string{"Mark Twain"}})

	values, err := store.FieldValues(ctx, normalize.FieldAuthor)
	if err != nil {
		t.Fatalf("FieldValues failed: %v", err)
	}
	want := []catalog.FieldValue{
		{Raw: "Mark Twain", Count: 2},
		{Raw: "Twain, Mark", Count: 1},
	}
	if !reflect.DeepEqual(values, want) {
		t.Fatalf("unexpected field values: %#v", values)
	}
}

func TestRenameFieldValue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	first := testsupport.AddBook(t, store, catalog.Book{Title: "A", Authors: []string{"Twain, Mark", "Jane Austen"}})
	testsupport.AddBook(t, store, catalog.Book{Title: "B", Authors: []string{"Twain, Mark"}})
	untouched := testsupport.AddBook(t, store, catalog.Book{Title: "C", Authors: []string{"Bram Stoker"}})

	touched, err := store.RenameFieldValue(ctx, normalize.FieldAuthor, "Twain, Mark", "Mark Twain")
	if err != nil {
		t.Fatalf("RenameFieldValue failed: %v", err)
	}
	if touched != 2 {
		t.Fatalf("expected 2 records touched, got %d", touched)
	}

	got, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !reflect.DeepEqual(got.Authors, []string{"Mark Twain", "Jane Austen"}) {
		t.Fatalf("unexpected authors after rename: %v", got.Authors)
	}

	same, err := store.GetByID(ctx, untouched.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if same.Authors[0] != "Bram Stoker" {
		t.Fatalf("unrelated record changed: %v", same.Authors)
	}
}

func TestRemove(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	added := testsupport.AddBook(t, store, catalog.Book{Title: "Emma"})

	removed, err := store.Remove(ctx, added.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Fatal("expected record removed")
	}

	removed, err = store.Remove(ctx, added.ID)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed {
		t.Fatal("expected second remove to report missing")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty catalog, got %d", count)
	}
}

func TestImportJSONFingerprintsFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	bookFile := filepath.Join(t.TempDir(), "emma.epub")
	if err := os.WriteFile(bookFile, []byte("emma bytes"), 0o644); err != nil {
		t.Fatalf("write book file: %v", err)
	}

	dump := `[
        {"title": "Emma", "authors": ["Jane Austen"], "formats": [{"name": "EPUB", "path": ` + jsonString(bookFile) + `}]},
        {"title": "Dracula", "identifiers": {"isbn": "978"}}
    ]`

	imported, err := store.ImportJSON(ctx, strings.NewReader(dump))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported, got %d", imported)
	}

	books, err := store.Snapshot(ctx, "emma")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(books) != 1 || len(books[0].Formats) != 1 {
		t.Fatalf("unexpected import result: %#v", books)
	}
	format := books[0].Formats[0]
	if format.Name != "epub" {
		t.Fatalf("expected lowered format name, got %q", format.Name)
	}
	if len(format.Fingerprint) != 64 {
		t.Fatalf("expected hex sha256 fingerprint, got %q", format.Fingerprint)
	}
	if format.Size != int64(len("emma bytes")) {
		t.Fatalf("unexpected size: %d", format.Size)
	}
}

func jsonString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + replacer.Replace(s) + `"`
}
