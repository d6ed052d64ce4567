package normalize_test

import (
	"testing"

	"bookdup/internal/normalize"
)

func TestTitleKey(t *testing.T) {
	opts := normalize.Default()
	cases := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain", "The Hobbit", "hobbit"},
		{"punctuation", "the hobbit!", "hobbit"},
		{"accents", "Café du Monde", "cafe du monde"},
		{"collapsed whitespace", "  A   Study    in Scarlet ", "study in scarlet"},
		{"leading article only when more tokens follow", "The", "the"},
		{"empty", "   ", ""},
		{"mixed case and dashes", "Harry Potter - And the Goblet", "harry potter and goblet"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalize.TitleKey(tc.title, opts); got != tc.expected {
				t.Fatalf("TitleKey(%q) = %q, want %q", tc.title, got, tc.expected)
			}
		})
	}
}

func TestFuzzyTitleKeyDropsStopWordsEverywhere(t *testing.T) {
	opts := normalize.Default()
	a := normalize.FuzzyTitleKey("The Lord of the Rings", opts)
	b := normalize.FuzzyTitleKey("Lord of Rings", opts)
	if a != b {
		t.Fatalf("expected fuzzy keys to match: %q vs %q", a, b)
	}
}

func TestTitleKeyHonorsConfiguredStopWords(t *testing.T) {
	opts := normalize.Options{TitleStopWords: []string{"of", "and"}}
	if got := normalize.TitleKey("War and Peace", opts); got != "war peace" {
		t.Fatalf("TitleKey = %q, want %q", got, "war peace")
	}
}

func TestTitleSoundexKey(t *testing.T) {
	opts := normalize.Default()
	a := normalize.TitleSoundexKey("The Hobbit", 6, opts)
	b := normalize.TitleSoundexKey("the hobit", 6, opts)
	if a == "" || a != b {
		t.Fatalf("expected matching soundex keys, got %q and %q", a, b)
	}
	if got := normalize.TitleSoundexKey("", 6, opts); got != "" {
		t.Fatalf("expected empty soundex key for empty title, got %q", got)
	}
}
