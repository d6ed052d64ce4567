package normalize

import "strings"

// AuthorKey holds the two comparison forms of one author name. Canonical is
// the name in reading order ("j r r tolkien"); Swapped moves the final token
// to the front ("tolkien j r r") so that records disagreeing on name order
// still intersect on at least one form.
type AuthorKey struct {
	Canonical string
	Swapped   string
}

// Keys returns the non-empty forms, canonical first.
func (k AuthorKey) Keys() []string {
	if k.Canonical == "" {
		return nil
	}
	if k.Swapped == "" || k.Swapped == k.Canonical {
		return []string{k.Canonical}
	}
	return []string{k.Canonical, k.Swapped}
}

// AuthorKeys normalizes a single author name. A "Last, First" form is
// reordered to reading order before tokenization, and configured connective
// particles are removed. Returns the zero AuthorKey for names with no usable
// tokens.
func AuthorKeys(name string, opts Options) AuthorKey {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, ","); idx >= 0 {
		name = strings.TrimSpace(name[idx+1:]) + " " + strings.TrimSpace(name[:idx])
	}
	tokens := dropWords(Tokens(name), wordSet(opts.AuthorIgnoreWords))
	if len(tokens) == 0 {
		return AuthorKey{}
	}
	canonical := strings.Join(tokens, " ")
	if len(tokens) == 1 {
		return AuthorKey{Canonical: canonical, Swapped: canonical}
	}
	swapped := make([]string, 0, len(tokens))
	swapped = append(swapped, tokens[len(tokens)-1])
	swapped = append(swapped, tokens[:len(tokens)-1]...)
	return AuthorKey{Canonical: canonical, Swapped: strings.Join(swapped, " ")}
}

// GroupKey returns a single orientation-independent key for the author: the
// lexicographically smaller of the two forms. "Mark Twain" and "Twain Mark"
// share a group key even though their canonical forms differ.
func (k AuthorKey) GroupKey() string {
	if k.Swapped != "" && k.Swapped < k.Canonical {
		return k.Swapped
	}
	return k.Canonical
}

// AuthorSoundexKey produces the phonetic author key: the soundex code of the
// surname (final token in reading order) plus the first initial. "Tolkien,
// J.R.R." and "J. R. R. Tolkein" collapse to the same code.
func AuthorSoundexKey(name string, length int, opts Options) string {
	key := AuthorKeys(name, opts)
	if key.Canonical == "" {
		return ""
	}
	tokens := strings.Fields(key.Canonical)
	surname := tokens[len(tokens)-1]
	code := Soundex(surname, length)
	if len(tokens) == 1 {
		return code
	}
	return code + " " + tokens[0][:1]
}
