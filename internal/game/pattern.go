// internal/game/pattern.go
//
// Pattern rendering: how a single candidate word would look after a guess.

package game

import "strings"

// Render returns prior with every position where word holds guess revealed.
// word and prior must have equal length; Partition checks this before calling.
func Render(guess byte, word, prior string) string {
	b := []byte(prior)
	for i := 0; i < len(word); i++ {
		if word[i] == guess {
			b[i] = guess
		}
	}
	return string(b)
}

// Blanks counts the unrevealed positions in pattern.
func Blanks(pattern string) int {
	n := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == Blank {
			n++
		}
	}
	return n
}

// BlankPattern returns a fully unrevealed pattern of the given length.
func BlankPattern(length int) string {
	return strings.Repeat(string(Blank), length)
}
