// Package normalize converts raw bibliographic field values into canonical
// comparison keys.
//
// Titles are folded (case and accents), stripped of leading articles and
// configured stop words, and collapsed to space-separated tokens. Authors
// additionally yield a swapped-order variant so "J. Tolkien" and
// "Tolkien, J." compare equal downstream. Series, publisher, and tag values
// use a simpler fold. Soundex codes back the phonetic match level.
//
// Every function in this package is a pure function of its input and the
// provided Options; nothing here reads ambient state.
package normalize
