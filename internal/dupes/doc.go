// Package dupes is the grouping engine: it partitions a catalog snapshot
// into duplicate groups under a match rule.
//
// Records are first bucketed by a cheap coarse key (normalized title,
// identifier value, or fingerprint) so only candidates inside a bucket are
// compared pairwise. The pairwise results feed a union-find structure whose
// closure forms the groups; exempted members are then filtered out and
// groups that fall below two members are dropped. For a fixed snapshot,
// rule, and exemption set the output is identical across runs, with groups
// and members enumerated in first-seen record order.
package dupes
