package normalize

import "strings"

// FieldKind identifies which single-field domain a value belongs to.
type FieldKind string

const (
	FieldAuthor    FieldKind = "author"
	FieldSeries    FieldKind = "series"
	FieldPublisher FieldKind = "publisher"
	FieldTag       FieldKind = "tag"
)

// ParseFieldKind validates a user-supplied field kind string.
func ParseFieldKind(value string) (FieldKind, bool) {
	switch FieldKind(strings.ToLower(strings.TrimSpace(value))) {
	case FieldAuthor:
		return FieldAuthor, true
	case FieldSeries:
		return FieldSeries, true
	case FieldPublisher:
		return FieldPublisher, true
	case FieldTag:
		return FieldTag, true
	}
	return "", false
}

// FieldKey produces the comparison key for a single field value. Authors go
// through the author normalizer so order-swapped spellings collapse; the
// other kinds use a case/accent/punctuation fold.
func FieldKey(value string, kind FieldKind, opts Options) string {
	switch kind {
	case FieldAuthor:
		return AuthorKeys(value, opts).GroupKey()
	default:
		return strings.Join(Tokens(value), " ")
	}
}

// FieldSoundexKey produces the phonetic key for a single field value.
func FieldSoundexKey(value string, kind FieldKind, length int, opts Options) string {
	switch kind {
	case FieldAuthor:
		return AuthorSoundexKey(value, length, opts)
	default:
		key := strings.Join(Tokens(value), "")
		if key == "" {
			return ""
		}
		return Soundex(key, length)
	}
}
