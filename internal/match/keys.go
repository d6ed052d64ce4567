package match

import (
	"strings"

	"bookdup/internal/catalog"
	"bookdup/internal/language"
	"bookdup/internal/normalize"
)

// Keys holds the precomputed comparison keys for one record under one rule.
// Computing keys once per record keeps the pairwise comparisons inside a
// bucket cheap.
type Keys struct {
	// Eligible reports whether the record can participate in the rule at
	// all. Ineligible records are excluded from candidacy, never an error.
	Eligible bool

	// Title is the normalized title key; empty when the title is empty.
	Title string
	// TitleWildcard marks the title as ignored: it contributes nothing and
	// matches anything.
	TitleWildcard bool

	// Authors holds, per author, the candidate keys that author answers to
	// (canonical and swapped forms).
	Authors [][]string
	// AuthorWildcard marks authors as ignored.
	AuthorWildcard bool

	// Language is the ISO 639-1 code when language comparison is enabled.
	Language string

	// Identifier is the normalized identifier value in identifier mode.
	Identifier string

	// Fingerprints are the record's format content fingerprints in binary
	// mode.
	Fingerprints []string
}

// Compute derives the comparison keys for a record under the given rule.
func Compute(book *catalog.Book, rule Rule, opts normalize.Options) Keys {
	switch rule.Mode {
	case ModeIdentifier:
		id := normalizeIdentifier(book.Identifier(rule.IdentifierType))
		return Keys{Eligible: id != "", Identifier: id}
	case ModeBinary:
		prints := book.Fingerprints()
		return Keys{Eligible: len(prints) > 0, Fingerprints: prints}
	default:
		return computeTitleAuthor(book, rule, opts)
	}
}

func computeTitleAuthor(book *catalog.Book, rule Rule, opts normalize.Options) Keys {
	keys := Keys{Eligible: true}

	if rule.IgnoreTitle {
		keys.TitleWildcard = true
	} else {
		keys.Title = titleKey(book.Title, rule, opts)
		if keys.Title == "" {
			// Empty titles never match unless title is ignored.
			keys.Eligible = false
		}
	}

	if rule.IgnoreAuthor {
		keys.AuthorWildcard = true
	} else {
		for _, author := range book.Authors {
			candidates := authorCandidates(author, rule, opts)
			if len(candidates) > 0 {
				keys.Authors = append(keys.Authors, candidates)
			}
		}
		if len(keys.Authors) == 0 {
			// Zero-author records never match author-sensitive rules.
			keys.Eligible = false
		}
	}

	if rule.IncludeLanguage {
		keys.Language = language.ToISO2(book.Language)
	}
	return keys
}

func titleKey(title string, rule Rule, opts normalize.Options) string {
	switch rule.TitleLevel {
	case LevelIdentical:
		return strings.TrimSpace(title)
	case LevelSoundex:
		return normalize.TitleSoundexKey(title, rule.Soundex.Title, opts)
	case LevelFuzzy:
		return normalize.FuzzyTitleKey(title, opts)
	default:
		return normalize.TitleKey(title, opts)
	}
}

func authorCandidates(author string, rule Rule, opts normalize.Options) []string {
	switch rule.AuthorLevel {
	case LevelIdentical:
		trimmed := strings.TrimSpace(author)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	case LevelSoundex:
		key := normalize.AuthorSoundexKey(author, rule.Soundex.Author, opts)
		if key == "" {
			return nil
		}
		return []string{key}
	case LevelFuzzy:
		return fuzzyAuthorCandidates(author, opts)
	default:
		return normalize.AuthorKeys(author, opts).Keys()
	}
}

// fuzzyAuthorCandidates reduces given names to initials so "John Tolkien"
// and "J. Tolkien" collapse to the same key. Both orientations are emitted
// because a one-token ordering cannot tell surname from given name.
func fuzzyAuthorCandidates(author string, opts normalize.Options) []string {
	key := normalize.AuthorKeys(author, opts)
	var candidates []string
	for _, form := range key.Keys() {
		if reduced := surnameInitialKey(form); reduced != "" {
			candidates = appendUnique(candidates, reduced)
		}
	}
	return candidates
}

// surnameInitialKey turns "j r r tolkien" into "tolkien j": surname plus the
// first given initial.
func surnameInitialKey(form string) string {
	tokens := strings.Fields(form)
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	return tokens[len(tokens)-1] + " " + tokens[0][:1]
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

// normalizeIdentifier performs the trivial separator/case normalization
// applied before identifier equality checks.
func normalizeIdentifier(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case ' ', '-', '_':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
