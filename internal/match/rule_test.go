package match_test

import (
	"testing"

	"bookdup/internal/match"
)

func validTitleAuthorRule() match.Rule {
	return match.Rule{
		Mode:        match.ModeTitleAuthor,
		TitleLevel:  match.LevelSimilar,
		AuthorLevel: match.LevelSimilar,
		MultiAuthor: match.PolicyAny,
	}
}

func TestRuleValidateAcceptsModes(t *testing.T) {
	cases := []struct {
		name string
		rule match.Rule
	}{
		{"title author", validTitleAuthorRule()},
		{"identifier", match.Rule{Mode: match.ModeIdentifier, IdentifierType: "isbn"}},
		{"binary", match.Rule{Mode: match.ModeBinary}},
		{"ignore title", match.Rule{
			Mode:        match.ModeTitleAuthor,
			IgnoreTitle: true,
			AuthorLevel: match.LevelSimilar,
			MultiAuthor: match.PolicyAny,
		}},
		{"soundex levels", match.Rule{
			Mode:        match.ModeTitleAuthor,
			TitleLevel:  match.LevelSoundex,
			AuthorLevel: match.LevelSoundex,
			MultiAuthor: match.PolicyAll,
			Soundex:     match.SoundexLengths{Title: 6, Author: 4},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.rule.Validate(); err != nil {
				t.Fatalf("expected valid rule, got %v", err)
			}
		})
	}
}

func TestRuleValidateRejectsInvalidCombinations(t *testing.T) {
	cases := []struct {
		name string
		rule match.Rule
	}{
		{"identifier with title option", match.Rule{
			Mode: match.ModeIdentifier, IdentifierType: "isbn", IgnoreTitle: true,
		}},
		{"identifier with author level", match.Rule{
			Mode: match.ModeIdentifier, IdentifierType: "isbn", AuthorLevel: match.LevelSimilar,
		}},
		{"identifier without type", match.Rule{Mode: match.ModeIdentifier}},
		{"binary with language option", match.Rule{Mode: match.ModeBinary, IncludeLanguage: true}},
		{"binary with identifier type", match.Rule{Mode: match.ModeBinary, IdentifierType: "isbn"}},
		{"both ignored", match.Rule{
			Mode: match.ModeTitleAuthor, IgnoreTitle: true, IgnoreAuthor: true,
		}},
		{"title author with identifier type", func() match.Rule {
			r := validTitleAuthorRule()
			r.IdentifierType = "isbn"
			return r
		}()},
		{"soundex without length", match.Rule{
			Mode:        match.ModeTitleAuthor,
			TitleLevel:  match.LevelSoundex,
			AuthorLevel: match.LevelSimilar,
			MultiAuthor: match.PolicyAny,
		}},
		{"unknown level", match.Rule{
			Mode:        match.ModeTitleAuthor,
			TitleLevel:  match.Level("close enough"),
			AuthorLevel: match.LevelSimilar,
			MultiAuthor: match.PolicyAny,
		}},
		{"unknown mode", match.Rule{Mode: match.Mode("psychic")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.rule.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if _, err := match.ParseMode("Identifier"); err != nil {
		t.Fatalf("ParseMode: %v", err)
	}
	if _, err := match.ParseMode("levenshtein"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
