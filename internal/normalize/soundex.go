package normalize

import "strings"

// soundexCodes maps letters to their soundex digit; letters absent from the
// map (vowels, h, w, y) separate runs without contributing a digit.
var soundexCodes = map[byte]byte{
	'b': '1', 'f': '1', 'p': '1', 'v': '1',
	'c': '2', 'g': '2', 'j': '2', 'k': '2', 'q': '2', 's': '2', 'x': '2', 'z': '2',
	'd': '3', 't': '3',
	'l': '4',
	'm': '5', 'n': '5',
	'r': '6',
}

// Soundex computes the soundex code of s, extended to the requested length
// (standard soundex uses 4). Longer lengths make the phonetic match level
// stricter. Input is folded first; non-letter characters are skipped.
// Returns "" when s contains no letters or length is not positive.
func Soundex(s string, length int) string {
	if length <= 0 {
		return ""
	}
	folded := Fold(s)
	var first byte
	var b strings.Builder
	var prev byte
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if c < 'a' || c > 'z' {
			continue
		}
		code := soundexCodes[c]
		if first == 0 {
			first = c - 'a' + 'A'
			b.WriteByte(first)
			prev = code
			continue
		}
		if code == 0 {
			// h and w do not break a run of identical codes; vowels do.
			if c != 'h' && c != 'w' {
				prev = 0
			}
			continue
		}
		if code == prev {
			continue
		}
		b.WriteString(string(code))
		prev = code
		if b.Len() >= length {
			break
		}
	}
	if first == 0 {
		return ""
	}
	code := b.String()
	for len(code) < length {
		code += "0"
	}
	return code[:length]
}
