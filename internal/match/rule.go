package match

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the comparison strategy.
type Mode string

const (
	// ModeTitleAuthor matches on fuzzy-normalized title and author keys.
	ModeTitleAuthor Mode = "title_author"
	// ModeIdentifier matches on equality of one identifier field.
	ModeIdentifier Mode = "identifier"
	// ModeBinary matches on shared format content fingerprints.
	ModeBinary Mode = "binary"
)

// Level selects how aggressively a title or author value is normalized
// before comparison.
type Level string

const (
	// LevelIdentical compares trimmed raw values.
	LevelIdentical Level = "identical"
	// LevelSimilar compares case/accent/punctuation-folded keys.
	LevelSimilar Level = "similar"
	// LevelSoundex compares phonetic codes.
	LevelSoundex Level = "soundex"
	// LevelFuzzy compares aggressively reduced keys (stop words dropped
	// everywhere; author given names reduced to initials).
	LevelFuzzy Level = "fuzzy"
)

// MultiAuthorPolicy controls how much author agreement a match needs when
// records list several authors.
type MultiAuthorPolicy string

const (
	// PolicyAny requires at least one qualifying author pair. This is the
	// default; it exists to raise duplicate recall over primary-author-only
	// comparison.
	PolicyAny MultiAuthorPolicy = "any"
	// PolicyAll requires every author on each record to match one on the
	// other.
	PolicyAll MultiAuthorPolicy = "all"
)

// SoundexLengths carries the configured phonetic code lengths.
type SoundexLengths struct {
	Title  int
	Author int
}

// Rule is an immutable comparison configuration. Construct with the fields
// appropriate for Mode and call Validate before use; the grouping engine
// refuses unvalidated combinations.
type Rule struct {
	Mode Mode

	// Title/author sub-options, legal only with ModeTitleAuthor.
	TitleLevel      Level
	AuthorLevel     Level
	IgnoreTitle     bool
	IgnoreAuthor    bool
	IncludeLanguage bool
	MultiAuthor     MultiAuthorPolicy
	Soundex         SoundexLengths

	// IdentifierType names the identifier field, legal only with
	// ModeIdentifier.
	IdentifierType string
}

// ParseMode validates a user-supplied mode string.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeTitleAuthor:
		return ModeTitleAuthor, nil
	case ModeIdentifier:
		return ModeIdentifier, nil
	case ModeBinary:
		return ModeBinary, nil
	}
	return "", fmt.Errorf("unknown match mode %q (expected title_author, identifier, or binary)", value)
}

// ParseLevel validates a user-supplied match level string.
func ParseLevel(value string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(value))) {
	case LevelIdentical:
		return LevelIdentical, nil
	case LevelSimilar:
		return LevelSimilar, nil
	case LevelSoundex:
		return LevelSoundex, nil
	case LevelFuzzy:
		return LevelFuzzy, nil
	}
	return "", fmt.Errorf("unknown match level %q (expected identical, similar, soundex, or fuzzy)", value)
}

// Validate rejects rule combinations that must never reach the grouping
// engine. It is called at configuration time so the user sees the problem
// before any search runs.
func (r Rule) Validate() error {
	switch r.Mode {
	case ModeTitleAuthor:
		if r.IgnoreTitle && r.IgnoreAuthor {
			return errors.New("title and author cannot both be ignored")
		}
		if !r.IgnoreTitle {
			if _, err := ParseLevel(string(r.TitleLevel)); err != nil {
				return fmt.Errorf("title match: %w", err)
			}
			if r.TitleLevel == LevelSoundex && r.Soundex.Title <= 0 {
				return errors.New("title soundex length must be positive")
			}
		}
		if !r.IgnoreAuthor {
			if _, err := ParseLevel(string(r.AuthorLevel)); err != nil {
				return fmt.Errorf("author match: %w", err)
			}
			if r.AuthorLevel == LevelSoundex && r.Soundex.Author <= 0 {
				return errors.New("author soundex length must be positive")
			}
			switch r.MultiAuthor {
			case PolicyAny, PolicyAll:
			default:
				return fmt.Errorf("unknown multi-author policy %q (expected any or all)", r.MultiAuthor)
			}
		}
		if r.IdentifierType != "" {
			return errors.New("identifier type only applies to identifier mode")
		}
	case ModeIdentifier:
		if err := r.rejectTitleAuthorOptions(); err != nil {
			return err
		}
		if strings.TrimSpace(r.IdentifierType) == "" {
			return errors.New("identifier mode requires an identifier type")
		}
	case ModeBinary:
		if err := r.rejectTitleAuthorOptions(); err != nil {
			return err
		}
		if r.IdentifierType != "" {
			return errors.New("identifier type only applies to identifier mode")
		}
	default:
		return fmt.Errorf("unknown match mode %q", r.Mode)
	}
	return nil
}

func (r Rule) rejectTitleAuthorOptions() error {
	if r.IgnoreTitle || r.IgnoreAuthor || r.IncludeLanguage ||
		r.TitleLevel != "" || r.AuthorLevel != "" || r.MultiAuthor != "" {
		return fmt.Errorf("title/author options only apply to %s mode", ModeTitleAuthor)
	}
	return nil
}

// Describe renders the rule for logs and report headers.
func (r Rule) Describe() string {
	switch r.Mode {
	case ModeIdentifier:
		return fmt.Sprintf("identifier (%s)", r.IdentifierType)
	case ModeBinary:
		return "binary"
	default:
		var parts []string
		if r.IgnoreTitle {
			parts = append(parts, "title ignored")
		} else {
			parts = append(parts, fmt.Sprintf("title %s", r.TitleLevel))
		}
		if r.IgnoreAuthor {
			parts = append(parts, "author ignored")
		} else {
			parts = append(parts, fmt.Sprintf("author %s", r.AuthorLevel))
		}
		if r.IncludeLanguage {
			parts = append(parts, "language compared")
		}
		return strings.Join(parts, ", ")
	}
}
