package match_test

import (
	"testing"

	"bookdup/internal/catalog"
	"bookdup/internal/match"
	"bookdup/internal/normalize"
)

func computeKeys(t *testing.T, book catalog.Book, rule match.Rule) match.Keys {
	t.Helper()
	if err := rule.Validate(); err != nil {
		t.Fatalf("rule invalid: %v", err)
	}
	return match.Compute(&book, rule, normalize.Default())
}

func TestTitleAuthorEquivalence(t *testing.T) {
	rule := validTitleAuthorRule()
	a := computeKeys(t, catalog.Book{Title: "The Hobbit", Authors: []string{"J. Tolkien"}}, rule)
	b := computeKeys(t, catalog.Book{Title: "the hobbit!", Authors: []string{"Tolkien, J."}}, rule)

	ok, reason := match.Equivalent(a, b, rule)
	if !ok {
		t.Fatal("expected records to be equivalent")
	}
	if reason != match.ReasonTitleAuthor {
		t.Fatalf("reason = %q, want %q", reason, match.ReasonTitleAuthor)
	}
}

func TestEquivalenceIsSymmetric(t *testing.T) {
	rules := []match.Rule{
		validTitleAuthorRule(),
		{Mode: match.ModeIdentifier, IdentifierType: "isbn"},
		{Mode: match.ModeBinary},
	}
	books := []catalog.Book{
		{Title: "The Hobbit", Authors: []string{"J. Tolkien"}, Identifiers: map[string]string{"isbn": "9780261102217"}, Formats: []catalog.Format{{Name: "epub", Fingerprint: "aa"}}},
		{Title: "the hobbit", Authors: []string{"Tolkien, J."}, Identifiers: map[string]string{"isbn": "978-0261102217"}, Formats: []catalog.Format{{Name: "pdf", Fingerprint: "aa"}}},
		{Title: "Emma", Authors: []string{"Jane Austen"}, Identifiers: map[string]string{"isbn": "111"}, Formats: []catalog.Format{{Name: "epub", Fingerprint: "bb"}}},
	}
	for _, rule := range rules {
		for i := range books {
			for j := range books {
				if i == j {
					continue
				}
				a := computeKeys(t, books[i], rule)
				b := computeKeys(t, books[j], rule)
				ab, _ := match.Equivalent(a, b, rule)
				ba, _ := match.Equivalent(b, a, rule)
				if ab != ba {
					t.Fatalf("asymmetric result for rule %s books %d/%d", rule.Mode, i, j)
				}
			}
		}
	}
}

func TestIdentifierEquivalenceIgnoresTitle(t *testing.T) {
	rule := match.Rule{Mode: match.ModeIdentifier, IdentifierType: "isbn"}
	a := computeKeys(t, catalog.Book{Title: "One Title", Identifiers: map[string]string{"isbn": "9780261102217"}}, rule)
	b := computeKeys(t, catalog.Book{Title: "Another Title", Identifiers: map[string]string{"ISBN": "978-0261102217"}}, rule)

	ok, reason := match.Equivalent(a, b, rule)
	if !ok || reason != match.ReasonIdentifier {
		t.Fatalf("expected identifier match, got ok=%v reason=%q", ok, reason)
	}
}

func TestIdentifierMissingValueIsIneligible(t *testing.T) {
	rule := match.Rule{Mode: match.ModeIdentifier, IdentifierType: "isbn"}
	keys := computeKeys(t, catalog.Book{Title: "No ISBN"}, rule)
	if keys.Eligible {
		t.Fatal("expected record without identifier to be ineligible")
	}
}

func TestBinaryEquivalenceRequiresSharedFingerprint(t *testing.T) {
	rule := match.Rule{Mode: match.ModeBinary}
	a := computeKeys(t, catalog.Book{Title: "A", Formats: []catalog.Format{{Name: "epub", Fingerprint: "f1"}, {Name: "pdf", Fingerprint: "f2"}}}, rule)
	b := computeKeys(t, catalog.Book{Title: "B", Formats: []catalog.Format{{Name: "epub", Fingerprint: "f2"}}}, rule)
	c := computeKeys(t, catalog.Book{Title: "C", Formats: []catalog.Format{{Name: "epub", Fingerprint: "f3"}}}, rule)

	if ok, _ := match.Equivalent(a, b, rule); !ok {
		t.Fatal("expected shared fingerprint to match")
	}
	if ok, _ := match.Equivalent(a, c, rule); ok {
		t.Fatal("expected disjoint fingerprints not to match")
	}

	empty := computeKeys(t, catalog.Book{Title: "D"}, rule)
	if empty.Eligible {
		t.Fatal("expected record without formats to be ineligible")
	}
}

func TestZeroAuthorsNeverMatchUnlessIgnored(t *testing.T) {
	rule := validTitleAuthorRule()
	keys := computeKeys(t, catalog.Book{Title: "The Hobbit"}, rule)
	if keys.Eligible {
		t.Fatal("expected zero-author record to be ineligible")
	}

	ignoring := match.Rule{
		Mode:         match.ModeTitleAuthor,
		TitleLevel:   match.LevelSimilar,
		IgnoreAuthor: true,
	}
	keys = computeKeys(t, catalog.Book{Title: "The Hobbit"}, ignoring)
	if !keys.Eligible {
		t.Fatal("expected record to be eligible when authors are ignored")
	}
}

func TestEmptyTitleNeverMatchesUnlessIgnored(t *testing.T) {
	rule := validTitleAuthorRule()
	keys := computeKeys(t, catalog.Book{Title: "   ", Authors: []string{"Jane Austen"}}, rule)
	if keys.Eligible {
		t.Fatal("expected empty-title record to be ineligible")
	}
}

func TestLanguageComparison(t *testing.T) {
	rule := validTitleAuthorRule()
	rule.IncludeLanguage = true

	english := computeKeys(t, catalog.Book{Title: "The Hobbit", Authors: []string{"J. Tolkien"}, Language: "eng"}, rule)
	alsoEnglish := computeKeys(t, catalog.Book{Title: "The Hobbit", Authors: []string{"J. Tolkien"}, Language: "en"}, rule)
	french := computeKeys(t, catalog.Book{Title: "The Hobbit", Authors: []string{"J. Tolkien"}, Language: "fre"}, rule)

	if ok, _ := match.Equivalent(english, alsoEnglish, rule); !ok {
		t.Fatal("expected eng and en to compare equal")
	}
	if ok, _ := match.Equivalent(english, french, rule); ok {
		t.Fatal("expected different languages not to match")
	}
}

func TestMultiAuthorPolicies(t *testing.T) {
	shared := catalog.Book{Title: "Good Omens", Authors: []string{"Terry Pratchett", "Neil Gaiman"}}
	partial := catalog.Book{Title: "Good Omens", Authors: []string{"Neil Gaiman"}}

	anyRule := validTitleAuthorRule()
	a := computeKeys(t, shared, anyRule)
	b := computeKeys(t, partial, anyRule)
	if ok, _ := match.Equivalent(a, b, anyRule); !ok {
		t.Fatal("policy any: expected single shared author to match")
	}

	allRule := validTitleAuthorRule()
	allRule.MultiAuthor = match.PolicyAll
	a = computeKeys(t, shared, allRule)
	b = computeKeys(t, partial, allRule)
	if ok, _ := match.Equivalent(a, b, allRule); ok {
		t.Fatal("policy all: expected partial author overlap not to match")
	}
}

func TestFuzzyAuthorLevelMatchesInitials(t *testing.T) {
	rule := validTitleAuthorRule()
	rule.AuthorLevel = match.LevelFuzzy
	a := computeKeys(t, catalog.Book{Title: "The Hobbit", Authors: []string{"John Ronald Reuel Tolkien"}}, rule)
	b := computeKeys(t, catalog.Book{Title: "The Hobbit", Authors: []string{"J. Tolkien"}}, rule)
	if ok, _ := match.Equivalent(a, b, rule); !ok {
		t.Fatal("expected fuzzy author level to match initialed form")
	}
}

func TestIgnoreTitleReportsAuthorReason(t *testing.T) {
	rule := match.Rule{
		Mode:        match.ModeTitleAuthor,
		IgnoreTitle: true,
		AuthorLevel: match.LevelSimilar,
		MultiAuthor: match.PolicyAny,
	}
	a := computeKeys(t, catalog.Book{Title: "First Book", Authors: []string{"Jane Austen"}}, rule)
	b := computeKeys(t, catalog.Book{Title: "Second Book", Authors: []string{"Austen, Jane"}}, rule)
	ok, reason := match.Equivalent(a, b, rule)
	if !ok || reason != match.ReasonAuthorOnly {
		t.Fatalf("expected author-only match, got ok=%v reason=%q", ok, reason)
	}
}
