package game

import (
	"fmt"
	"strings"
)

// hintText generates the hint for a 0-based hint index.
//
// The ladder reveals progressively more of the answer: first the
// length and opening letter, then the vowels in place, then every
// other character.
func hintText(answer string, index int) string {
	runes := []rune(answer)
	switch index {
	case 0:
		return fmt.Sprintf("Length: %d letters\nFirst letter: %c", len(runes), runes[0])
	case 1:
		return maskVowels(runes)
	default:
		return maskEveryOther(runes)
	}
}

// maskVowels keeps vowels and replaces every other character, spaces
// included, with an underscore.
func maskVowels(runes []rune) string {
	var b strings.Builder
	for _, r := range runes {
		if strings.ContainsRune("aeiou", r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// maskEveryOther keeps characters at even positions, counted across
// the whole answer, spaces included.
func maskEveryOther(runes []rune) string {
	var b strings.Builder
	for i, r := range runes {
		if i%2 == 0 {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
