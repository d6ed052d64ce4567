package match

// Reason explains why two records were judged equivalent. It travels with
// each group so results stay explainable to the user.
type Reason string

const (
	ReasonTitleAuthor Reason = "title+author match"
	ReasonTitleOnly   Reason = "title match"
	ReasonAuthorOnly  Reason = "author match"
	ReasonIdentifier  Reason = "identifier match"
	ReasonBinary      Reason = "binary match"
)

// Equivalent reports whether two records are duplicates under the rule,
// given their precomputed keys. The relation is symmetric: both argument
// orders produce the same answer.
func Equivalent(a, b Keys, rule Rule) (bool, Reason) {
	if !a.Eligible || !b.Eligible {
		return false, ""
	}
	switch rule.Mode {
	case ModeIdentifier:
		if a.Identifier != "" && a.Identifier == b.Identifier {
			return true, ReasonIdentifier
		}
		return false, ""
	case ModeBinary:
		if sharesFingerprint(a.Fingerprints, b.Fingerprints) {
			return true, ReasonBinary
		}
		return false, ""
	default:
		return titleAuthorEquivalent(a, b, rule)
	}
}

func titleAuthorEquivalent(a, b Keys, rule Rule) (bool, Reason) {
	titleIgnored := a.TitleWildcard || b.TitleWildcard
	if !titleIgnored && (a.Title == "" || a.Title != b.Title) {
		return false, ""
	}

	authorIgnored := a.AuthorWildcard || b.AuthorWildcard
	if !authorIgnored && !authorsOverlap(a.Authors, b.Authors, rule.MultiAuthor) {
		return false, ""
	}

	if rule.IncludeLanguage && a.Language != b.Language {
		return false, ""
	}

	switch {
	case titleIgnored:
		return true, ReasonAuthorOnly
	case authorIgnored:
		return true, ReasonTitleOnly
	default:
		return true, ReasonTitleAuthor
	}
}

func sharesFingerprint(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, fp := range a {
		set[fp] = struct{}{}
	}
	for _, fp := range b {
		if _, ok := set[fp]; ok {
			return true
		}
	}
	return false
}

// authorsOverlap applies the multi-author policy: any requires one
// qualifying author pair, all requires every author on each side to find a
// partner on the other.
func authorsOverlap(a, b [][]string, policy MultiAuthorPolicy) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if policy == PolicyAll {
		return allAuthorsMatch(a, b) && allAuthorsMatch(b, a)
	}
	for _, authorA := range a {
		for _, authorB := range b {
			if keysIntersect(authorA, authorB) {
				return true
			}
		}
	}
	return false
}

func allAuthorsMatch(from, to [][]string) bool {
	for _, author := range from {
		matched := false
		for _, candidate := range to {
			if keysIntersect(author, candidate) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func keysIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
