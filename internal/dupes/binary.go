package dupes

import "bookdup/internal/catalog"

// copyRef is one format copy within a binary group, carried with enough
// detail to pick the copy to keep.
type copyRef struct {
	book   *catalog.Book
	format catalog.Format
}

// removableCopies flags every format copy in the group except the one
// designated to keep per fingerprint. Only fingerprints shared by at least
// two copies produce flags: a lone copy is never surplus. Exempted members
// (absent from memberIDs) are left alone.
func removableCopies(books []catalog.Book, memberIdx []int, memberIDs []int64, keep KeepPolicy) []FormatCopy {
	included := make(map[int64]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		included[id] = struct{}{}
	}

	byPrint := make(map[string][]copyRef)
	var printOrder []string
	for _, idx := range memberIdx {
		book := &books[idx]
		if _, ok := included[book.ID]; !ok {
			continue
		}
		for _, format := range book.Formats {
			if format.Fingerprint == "" {
				continue
			}
			if _, seen := byPrint[format.Fingerprint]; !seen {
				printOrder = append(printOrder, format.Fingerprint)
			}
			byPrint[format.Fingerprint] = append(byPrint[format.Fingerprint], copyRef{book: book, format: format})
		}
	}

	var removable []FormatCopy
	for _, fp := range printOrder {
		copies := byPrint[fp]
		if len(copies) < 2 {
			continue
		}
		keeper := pickKeeper(copies, keep)
		for i, c := range copies {
			if i == keeper {
				continue
			}
			removable = append(removable, FormatCopy{
				BookID:      c.book.ID,
				Format:      c.format.Name,
				Fingerprint: fp,
			})
		}
	}
	return removable
}

// pickKeeper returns the index of the copy to keep. KeepNewest prefers the
// most recent modification marker and falls back to size; KeepLargest is the
// reverse. Remaining ties keep the first-seen copy.
func pickKeeper(copies []copyRef, keep KeepPolicy) int {
	best := 0
	for i := 1; i < len(copies); i++ {
		if betterCopy(copies[i], copies[best], keep) {
			best = i
		}
	}
	return best
}

func betterCopy(candidate, current copyRef, keep KeepPolicy) bool {
	if keep == KeepLargest {
		if candidate.format.Size != current.format.Size {
			return candidate.format.Size > current.format.Size
		}
		return candidate.format.ModifiedAt.After(current.format.ModifiedAt)
	}
	if !candidate.format.ModifiedAt.Equal(current.format.ModifiedAt) {
		return candidate.format.ModifiedAt.After(current.format.ModifiedAt)
	}
	return candidate.format.Size > current.format.Size
}
