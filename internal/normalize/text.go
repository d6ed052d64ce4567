package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options carries the configurable normalization knobs. The zero value is
// usable; Default fills in the stock word lists.
type Options struct {
	// TitleStopWords are removed from title keys wherever they appear.
	// Leading articles are always stripped regardless of this list.
	TitleStopWords []string
	// AuthorIgnoreWords are connective particles removed from author names
	// before comparison (e.g. "van", "de").
	AuthorIgnoreWords []string
}

// Default returns Options populated with the stock word lists.
func Default() Options {
	return Options{
		TitleStopWords:    []string{"a", "an", "the"},
		AuthorIgnoreWords: []string{"van", "von", "de", "der", "den", "la", "le", "di"},
	}
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases and strips accent marks so that "Élodie" and "elodie"
// produce the same key material.
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Tokens splits a folded string on any non-alphanumeric run.
func Tokens(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func wordSet(words []string) map[string]struct{} {
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = Fold(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func dropWords(tokens []string, words map[string]struct{}) []string {
	if len(words) == 0 {
		return tokens
	}
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, ok := words[tok]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
