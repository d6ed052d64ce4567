package normalize_test

import (
	"testing"

	"bookdup/internal/normalize"
)

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func TestAuthorKeysOrderInsensitive(t *testing.T) {
	opts := normalize.Default()
	cases := []struct {
		name string
		a    string
		b    string
	}{
		{"comma form", "Tolkien, J.R.R.", "J.R.R. Tolkien"},
		{"initial only", "J. Tolkien", "Tolkien, J."},
		{"swapped plain", "Mark Twain", "Twain Mark"},
		{"case and spacing", "mark  twain", "Twain, Mark"},
		{"particles ignored", "Ludwig van Beethoven", "Beethoven, Ludwig"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ka := normalize.AuthorKeys(tc.a, opts)
			kb := normalize.AuthorKeys(tc.b, opts)
			if !intersects(ka.Keys(), kb.Keys()) {
				t.Fatalf("expected %q and %q to share a key: %#v vs %#v", tc.a, tc.b, ka, kb)
			}
		})
	}
}

func TestAuthorKeysEmpty(t *testing.T) {
	key := normalize.AuthorKeys("  ,  ", normalize.Default())
	if key.Canonical != "" || len(key.Keys()) != 0 {
		t.Fatalf("expected zero key for blank author, got %#v", key)
	}
}

func TestAuthorGroupKeyOrientationIndependent(t *testing.T) {
	opts := normalize.Default()
	a := normalize.AuthorKeys("Mark Twain", opts).GroupKey()
	b := normalize.AuthorKeys("Twain Mark", opts).GroupKey()
	if a == "" || a != b {
		t.Fatalf("expected shared group key, got %q and %q", a, b)
	}
}

func TestAuthorSoundexKeyToleratesSpellingDrift(t *testing.T) {
	opts := normalize.Default()
	a := normalize.AuthorSoundexKey("J.R.R. Tolkien", 4, opts)
	b := normalize.AuthorSoundexKey("Tolkein, J.R.R.", 4, opts)
	if a == "" || a != b {
		t.Fatalf("expected matching soundex keys, got %q and %q", a, b)
	}
}
