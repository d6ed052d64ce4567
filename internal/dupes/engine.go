package dupes

import (
	"fmt"

	"bookdup/internal/catalog"
	"bookdup/internal/exemption"
	"bookdup/internal/match"
	"bookdup/internal/normalize"
)

// KeepPolicy selects which copy a binary auto-removal pass keeps.
type KeepPolicy string

const (
	// KeepNewest keeps the copy with the most recent modification marker.
	KeepNewest KeepPolicy = "newest"
	// KeepLargest keeps the copy with the largest byte size.
	KeepLargest KeepPolicy = "largest"
)

// Options carries grouping behavior beyond the match rule itself.
type Options struct {
	// BinaryAutoRemove flags surplus format copies in binary-mode groups.
	// It never deletes anything and never flags whole records.
	BinaryAutoRemove bool
	// BinaryKeep is the auto-removal tie-break; defaults to KeepNewest.
	BinaryKeep KeepPolicy
}

// FormatCopy identifies one format copy flagged as removable.
type FormatCopy struct {
	BookID      int64  `json:"book_id"`
	Format      string `json:"format"`
	Fingerprint string `json:"fingerprint"`
}

// Group is a set of records judged duplicates of one another. Members keep
// first-seen snapshot order.
type Group struct {
	// Key is the human-meaningful canonical key identifying why the members
	// were considered related. It is a stable, recomputable function of the
	// normalized fields, and it is the key exemptions are filed under.
	Key       string       `json:"key"`
	Reason    match.Reason `json:"reason"`
	Members   []int64      `json:"members"`
	Removable []FormatCopy `json:"removable,omitempty"`
}

// Find partitions the snapshot into duplicate groups under the rule,
// filtered against the exemption store. The snapshot is never mutated.
func Find(books []catalog.Book, rule match.Rule, exempt *exemption.Store, nopts normalize.Options, opts Options) ([]Group, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("match rule: %w", err)
	}
	if exempt == nil {
		exempt = exemption.New()
	}

	keys := make([]match.Keys, len(books))
	for i := range books {
		keys[i] = match.Compute(&books[i], rule, nopts)
	}

	uf := newUnionFind(len(books))
	for _, bucket := range coarseBuckets(keys, rule) {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				if uf.find(a) == uf.find(b) {
					continue
				}
				if ok, _ := match.Equivalent(keys[a], keys[b], rule); ok {
					uf.union(a, b)
				}
			}
		}
	}

	// Assemble groups in first-seen order; singletons are dropped.
	memberIdx := make(map[int][]int)
	var rootOrder []int
	for i := range books {
		if !keys[i].Eligible {
			continue
		}
		root := uf.find(i)
		if _, seen := memberIdx[root]; !seen {
			rootOrder = append(rootOrder, root)
		}
		memberIdx[root] = append(memberIdx[root], i)
	}

	reason := reasonFor(rule)
	var groups []Group
	for _, root := range rootOrder {
		members := memberIdx[root]
		if len(members) < 2 {
			continue
		}
		group := Group{
			Key:    groupKey(keys[members[0]], rule),
			Reason: reason,
		}
		for _, idx := range members {
			if exempt.IsExempt(group.Key, books[idx].ID) {
				continue
			}
			group.Members = append(group.Members, books[idx].ID)
		}
		if len(group.Members) < 2 {
			continue
		}
		if rule.Mode == match.ModeBinary && opts.BinaryAutoRemove {
			group.Removable = removableCopies(books, members, group.Members, opts.BinaryKeep)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// coarseBuckets groups record indices by a cheap key so pairwise comparison
// stays inside buckets. A record may land in several buckets (one per
// author key or fingerprint); the union-find merges across them.
func coarseBuckets(keys []match.Keys, rule match.Rule) map[string][]int {
	buckets := make(map[string][]int)
	add := func(key string, idx int) {
		if key == "" {
			return
		}
		buckets[key] = append(buckets[key], idx)
	}

	for i, k := range keys {
		if !k.Eligible {
			continue
		}
		switch rule.Mode {
		case match.ModeIdentifier:
			add(k.Identifier, i)
		case match.ModeBinary:
			for _, fp := range k.Fingerprints {
				add(fp, i)
			}
		default:
			if !rule.IgnoreTitle {
				add(k.Title, i)
				continue
			}
			for _, author := range k.Authors {
				for _, candidate := range author {
					add(candidate, i)
				}
			}
		}
	}
	return buckets
}

// groupKey derives the canonical exemption key from the group's first
// member.
func groupKey(k match.Keys, rule match.Rule) string {
	switch rule.Mode {
	case match.ModeIdentifier:
		return "identifier:" + rule.IdentifierType + ":" + k.Identifier
	case match.ModeBinary:
		return "binary:" + minString(k.Fingerprints)
	default:
		if !rule.IgnoreTitle {
			return "title:" + k.Title
		}
		if len(k.Authors) > 0 && len(k.Authors[0]) > 0 {
			return "author:" + k.Authors[0][0]
		}
		return ""
	}
}

func reasonFor(rule match.Rule) match.Reason {
	switch rule.Mode {
	case match.ModeIdentifier:
		return match.ReasonIdentifier
	case match.ModeBinary:
		return match.ReasonBinary
	default:
		switch {
		case rule.IgnoreTitle:
			return match.ReasonAuthorOnly
		case rule.IgnoreAuthor:
			return match.ReasonTitleOnly
		default:
			return match.ReasonTitleAuthor
		}
	}
}

func minString(values []string) string {
	min := ""
	for _, v := range values {
		if min == "" || v < min {
			min = v
		}
	}
	return min
}
