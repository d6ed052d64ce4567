// Package variations finds near-duplicate values within a single field
// domain (author names, series, publisher, tags) so the user can consolidate
// spellings. It reuses the normalizer's field keys and reports groups only;
// renaming is the catalog's job.
package variations

import (
	"fmt"

	"bookdup/internal/catalog"
	"bookdup/internal/normalize"
)

// Level selects how values are keyed: similar (normalized equality) or
// soundex (phonetic equality).
type Level string

const (
	LevelSimilar Level = "similar"
	LevelSoundex Level = "soundex"
)

// Options controls a variation search.
type Options struct {
	// Level defaults to LevelSimilar.
	Level Level
	// SoundexLength is required when Level is LevelSoundex.
	SoundexLength int
	// Normalize carries the configured word lists.
	Normalize normalize.Options
}

// Value is one distinct raw spelling with its record count.
type Value struct {
	Raw   string `json:"raw"`
	Count int    `json:"count"`
}

// Group is a set of distinct raw values considered equivalent. Canonical is
// the suggested rename target (most frequent spelling, first seen on ties);
// the caller may pick any other member instead.
type Group struct {
	Key       string  `json:"key"`
	Canonical string  `json:"canonical"`
	Values    []Value `json:"values"`
}

// Find groups the field's distinct raw values by normalized-key equality.
// Groups with a single distinct raw value are not variations and are
// dropped. Output order follows first appearance of each key; values keep
// their input order.
func Find(values []catalog.FieldValue, kind normalize.FieldKind, opts Options) ([]Group, error) {
	level := opts.Level
	if level == "" {
		level = LevelSimilar
	}
	if level == LevelSoundex && opts.SoundexLength <= 0 {
		return nil, fmt.Errorf("soundex length must be positive for %s variations", kind)
	}

	keyOf := func(raw string) string {
		if level == LevelSoundex {
			return normalize.FieldSoundexKey(raw, kind, opts.SoundexLength, opts.Normalize)
		}
		return normalize.FieldKey(raw, kind, opts.Normalize)
	}

	byKey := make(map[string][]Value)
	var keyOrder []string
	for _, fv := range values {
		key := keyOf(fv.Raw)
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], Value{Raw: fv.Raw, Count: fv.Count})
	}

	var groups []Group
	for _, key := range keyOrder {
		members := byKey[key]
		if len(members) < 2 {
			continue
		}
		groups = append(groups, Group{
			Key:       key,
			Canonical: suggestCanonical(members),
			Values:    members,
		})
	}
	return groups, nil
}

func suggestCanonical(values []Value) string {
	best := values[0]
	for _, v := range values[1:] {
		if v.Count > best.Count {
			best = v
		}
	}
	return best.Raw
}
