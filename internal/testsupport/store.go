package testsupport

import (
	"context"
	"testing"

	"bookdup/internal/catalog"
	"bookdup/internal/config"
	"bookdup/internal/prefs"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewPrefs wraps a prefs store around the test catalog's database.
func NewPrefs(t testing.TB, cfg *config.Config, cat *catalog.Store) *prefs.Store {
	t.Helper()
	return prefs.New(cat.DB(), cfg.LockPath())
}

// AddBook inserts a record for tests using the provided store.
func AddBook(t testing.TB, store *catalog.Store, book catalog.Book) *catalog.Book {
	t.Helper()

	added, err := store.Add(context.Background(), &book)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return added
}
