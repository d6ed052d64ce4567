// Package match holds the comparison rule model and the similarity engine.
//
// A Rule is a tagged variant: its Mode selects the comparison strategy
// (title/author, identifier, binary) and the sub-options legal for that mode
// are validated at construction so an invalid combination can never reach
// the grouping engine. Equivalence is a deterministic boolean, not a score;
// the fuzziness lives entirely in key normalization so results stay
// explainable.
package match
