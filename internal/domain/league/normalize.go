package league

import (
	"strings"
	"unicode"
)

// foldReplacer folds the accented letters seen in provider league names,
// plus their lower-cased double-encoded forms (UTF-8 bytes read back as
// Windows-1252 or Latin-1), onto plain ASCII.
var foldReplacer = strings.NewReplacer(
	// double-encoded
	"ã¼", "u", "ãœ", "u",
	"åÿ", "s", "å\u009f", "s", "åž", "s", "å\u009e", "s",
	"ã§", "c", "ã‡", "c", "ã\u0087", "c",
	"ä±", "i", "ä°", "i",
	"äÿ", "g", "ä\u009f", "g", "äž", "g", "ä\u009e", "g",
	"ã¶", "o", "ã–", "o", "ã\u0096", "o",
	"ã©", "e", "ã‰", "e", "ã\u0089", "e",
	"ã¡", "a", "ã\u0081", "a",
	"ã±", "n", "ã‘", "n", "ã\u0091", "n",
	// well-formed
	"ü", "u",
	"ş", "s",
	"ç", "c",
	"ı", "i",
	"ğ", "g",
	"ö", "o",
	"é", "e",
	"á", "a",
	"ñ", "n",
)

// Normalize lower-cases text, folds known accented and mis-encoded
// sequences to ASCII and drops everything that is not a-z, 0-9 or space.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	folded := foldReplacer.Replace(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
