// Package exemption maintains the persistent set of exemptions that
// suppress specific records from duplicate groups.
//
// Exemptions are organized in buckets keyed by the human-meaningful group
// key that caused the records to be considered related (a normalized title,
// author name, identifier value, or fingerprint), so the user can browse
// them per entity. An exemption only ever narrows the computed grouping: the
// grouping engine applies it strictly as a post-filter.
package exemption

import (
	"context"
	"errors"
	"sort"

	"bookdup/internal/prefs"
)

// prefsKey is where the exemption set lives in the prefs store.
const prefsKey = "exemptions"

// Store is the in-memory exemption set. Load it at the start of a search and
// Save after explicit user edits; edits never apply to an in-flight search.
type Store struct {
	buckets map[string]map[int64]struct{}
}

// Bucket is one group key with its exempted member ids, for listings.
type Bucket struct {
	Key     string  `json:"key"`
	Members []int64 `json:"members"`
}

// New returns an empty exemption store.
func New() *Store {
	return &Store{buckets: make(map[string]map[int64]struct{})}
}

// IsExempt reports whether the member is exempt under the group key.
func (s *Store) IsExempt(groupKey string, memberID int64) bool {
	members, ok := s.buckets[groupKey]
	if !ok {
		return false
	}
	_, exempt := members[memberID]
	return exempt
}

// Add exempts a member under the group key. Re-adding an existing exemption
// is a no-op.
func (s *Store) Add(groupKey string, memberID int64) {
	if groupKey == "" {
		return
	}
	members, ok := s.buckets[groupKey]
	if !ok {
		members = make(map[int64]struct{})
		s.buckets[groupKey] = members
	}
	members[memberID] = struct{}{}
}

// Remove deletes one exemption. Removing a non-existent entry is a no-op.
func (s *Store) Remove(groupKey string, memberID int64) {
	members, ok := s.buckets[groupKey]
	if !ok {
		return
	}
	delete(members, memberID)
	if len(members) == 0 {
		delete(s.buckets, groupKey)
	}
}

// MarkAllCurrent exempts every listed member under the group key in one
// operation ("mark all current results exempt").
func (s *Store) MarkAllCurrent(groupKey string, memberIDs []int64) {
	for _, id := range memberIDs {
		s.Add(groupKey, id)
	}
}

// Clear drops every exemption and returns how many members were removed.
func (s *Store) Clear() int {
	removed := 0
	for _, members := range s.buckets {
		removed += len(members)
	}
	s.buckets = make(map[string]map[int64]struct{})
	return removed
}

// Len returns the total number of exempted members across all buckets.
func (s *Store) Len() int {
	total := 0
	for _, members := range s.buckets {
		total += len(members)
	}
	return total
}

// Buckets lists the non-empty buckets sorted by key, members ascending.
// Buckets with no exemptions are omitted.
func (s *Store) Buckets() []Bucket {
	out := make([]Bucket, 0, len(s.buckets))
	for key, members := range s.buckets {
		if len(members) == 0 {
			continue
		}
		ids := make([]int64, 0, len(members))
		for id := range members {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, Bucket{Key: key, Members: ids})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Prune drops exempted members that no longer exist in the catalog, emptied
// buckets included. Returns how many members were dropped.
func (s *Store) Prune(exists func(int64) bool) int {
	dropped := 0
	for key, members := range s.buckets {
		for id := range members {
			if !exists(id) {
				delete(members, id)
				dropped++
			}
		}
		if len(members) == 0 {
			delete(s.buckets, key)
		}
	}
	return dropped
}

// Load reads the exemption set from the prefs store. A missing or corrupt
// value yields an empty store rather than an error, so a damaged preference
// never blocks searches.
func Load(ctx context.Context, p *prefs.Store) *Store {
	store := New()
	var buckets []Bucket
	if err := p.Get(ctx, prefsKey, &buckets); err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			// Fail open to no exemptions.
			return New()
		}
		return store
	}
	for _, bucket := range buckets {
		for _, id := range bucket.Members {
			store.Add(bucket.Key, id)
		}
	}
	return store
}

// Save writes the exemption set to the prefs store. Save then Load yields a
// membership-identical set.
func (s *Store) Save(ctx context.Context, p *prefs.Store) error {
	return p.Set(ctx, prefsKey, s.Buckets())
}
