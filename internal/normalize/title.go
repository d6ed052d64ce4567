package normalize

import "strings"

// leading articles are always stripped from title keys, independent of the
// configured stop-word list.
var leadingArticles = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
}

// TitleKey produces the similar-level comparison key for a title: folded,
// leading article removed, stop words dropped, punctuation and whitespace
// collapsed to single spaces. Returns "" for titles with no usable tokens.
func TitleKey(title string, opts Options) string {
	tokens := Tokens(title)
	if len(tokens) > 1 {
		if _, ok := leadingArticles[tokens[0]]; ok {
			tokens = tokens[1:]
		}
	}
	if kept := dropWords(append([]string(nil), tokens...), wordSet(opts.TitleStopWords)); len(kept) > 0 {
		tokens = kept
	}
	return strings.Join(tokens, " ")
}

// FuzzyTitleKey is the aggressive variant: stop words dropped everywhere and
// the remaining tokens fused with no separators, so differences in
// punctuation, spacing, and connective words all disappear.
func FuzzyTitleKey(title string, opts Options) string {
	tokens := Tokens(title)
	kept := dropWords(append([]string(nil), tokens...), wordSet(opts.TitleStopWords))
	kept = dropWords(kept, leadingArticles)
	if len(kept) == 0 {
		kept = tokens
	}
	return strings.Join(kept, "")
}

// TitleSoundexKey produces the phonetic key for a title: the soundex code of
// the fused similar-level key, truncated to length.
func TitleSoundexKey(title string, length int, opts Options) string {
	key := FuzzyTitleKey(title, opts)
	if key == "" {
		return ""
	}
	return Soundex(key, length)
}
