package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/evilhangman/internal/words"
)

func testLexicon(t *testing.T) *words.Lexicon {
	t.Helper()
	lx, err := words.New([]string{"cat", "dog", "cow", "flex", "ibex", "goal", "cool", "tool", "ab"})
	require.NoError(t, err)
	return lx
}

func run(t *testing.T, lx *words.Lexicon, input string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(lx, strings.NewReader(input), &out, opts...)
	require.NoError(t, s.Run())
	return out.String()
}

func TestSessionDecline(t *testing.T) {
	out := run(t, testLexicon(t), "maybe\nn\n")
	assert.Contains(t, out, "Shall we play? (y/n): ")
	assert.Contains(t, out, "Please respond with either yes (y) or no (n).")
	assert.Contains(t, out, "See you next time!")
	assert.NotContains(t, out, "How long")
}

func TestSessionLost(t *testing.T) {
	out := run(t, testLexicon(t), "y\n3\n1\nz\nn\n")
	assert.Contains(t, out, "Your chosen length is: 3.")
	assert.Contains(t, out, "Your chosen # of guesses is: 1. Let us begin!")
	assert.Contains(t, out, "The current state: \n---\n")
	assert.Contains(t, out, "You guessed: z")
	assert.Contains(t, out, "Womp womp! You lost...the word was: cat")
	assert.Contains(t, out, "See you next time!")
}

func TestSessionEliminatesFamily(t *testing.T) {
	out := run(t, testLexicon(t), "y 4 2 E o n")
	assert.Contains(t, out, "You guessed: e")
	// After "e" the round keeps goal/cool/tool; "o" then keeps cool/tool.
	assert.Contains(t, out, "Guessed so far: e")
	assert.Contains(t, out, "Womp womp! You lost...the word was: cool")
}

func TestSessionWon(t *testing.T) {
	out := run(t, testLexicon(t), "y 2 5 A b n")
	assert.Contains(t, out, "The current state: \na-\n")
	assert.Contains(t, out, "Hey! You won! The word was: ab")
}

func TestSessionRetriesSettings(t *testing.T) {
	out := run(t, testLexicon(t), "y 9 abc 3 0 x 1 1 z n")
	assert.Equal(t, 1, strings.Count(out, "Sorry, we don't have any words of that length. Try again"))
	assert.Equal(t, 1, strings.Count(out, "You need at least one guess. Try again"))
	assert.Equal(t, 3, strings.Count(out, "How long do you want your word to be?: "))
	assert.Equal(t, 3, strings.Count(out, "How many guesses do you want?: "))
	assert.Contains(t, out, "Please enter a single letter.")
	assert.Contains(t, out, "You lost")
}

func TestSessionSeveralRounds(t *testing.T) {
	out := run(t, testLexicon(t), "y 3 1 z y 2 1 q n")
	assert.Equal(t, 2, strings.Count(out, "Womp womp!"))
	assert.Contains(t, out, "the word was: ab")
}

func TestSessionInputEndsMidRound(t *testing.T) {
	out := run(t, testLexicon(t), "y 4 3 e")
	assert.Contains(t, out, "You guessed: e")
	assert.NotContains(t, out, "You won")
	assert.NotContains(t, out, "You lost")
}

func TestSessionDailyLength(t *testing.T) {
	out := run(t, testLexicon(t), "y 1 z n", WithDailyLength(3))
	assert.Contains(t, out, "Today's word is 3 letters long.")
	assert.NotContains(t, out, "How long do you want your word to be?")
	assert.Contains(t, out, "the word was: cat")
}

func TestSessionDailyLengthMissingFallsBackToPrompt(t *testing.T) {
	out := run(t, testLexicon(t), "y 3 1 z n", WithDailyLength(12))
	assert.Contains(t, out, "How long do you want your word to be?: ")
	assert.Contains(t, out, "the word was: cat")
}
