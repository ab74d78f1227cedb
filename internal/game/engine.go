// internal/game/engine.go
//
// Round state machine for a single evil hangman round.
// Responsibilities:
//   - Create rounds over a candidate word list of one length.
//   - Validate and apply guesses (single ASCII letter, folded to lower case).
//   - Partition the candidates, keep the adversary's family and advance the pattern.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Candidate lists come from the words package; NewRound copies them.
//   - A guess is never "wrong": the kept family may simply not contain the letter.
//   - Every applied guess consumes one guess, repeats included.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewRound constructs a round over candidates, all of which must be length letters long.
func NewRound(candidates []string, length, guesses int) (*Round, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: word length must be positive, got %d", ErrInvalidRound, length)
	}
	if guesses <= 0 {
		return nil, fmt.Errorf("%w: guess count must be positive, got %d", ErrInvalidRound, guesses)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no words of length %d", ErrInvalidRound, length)
	}
	for _, w := range candidates {
		if len(w) != length {
			return nil, fmt.Errorf("%w: %q is not %d letters", ErrInvalidRound, w, length)
		}
	}
	return &Round{
		ID:          randomID(),
		Length:      length,
		Pattern:     BlankPattern(length),
		Candidates:  append([]string(nil), candidates...),
		GuessesLeft: guesses,
		Guessed:     []string{},
		State:       StatePlaying,
	}, nil
}

// ApplyGuess plays one letter and mutates the round.
//
// Validation rules:
//   - Round must not be finished.
//   - Guess must be an ASCII letter; upper case is folded to lower case.
//
// State transitions:
//   - Pattern without blanks → won; the word is the pattern.
//   - Else no guesses left → lost; the word is the first surviving candidate.
//
// Errors wrapping ErrLengthMismatch or ErrNoFamilies mean the round's own
// invariants are broken and the round must not be continued.
func (r *Round) ApplyGuess(guess byte) (Outcome, error) {
	if r.Finished() {
		return r.outcome(guess, 0), ErrRoundFinished
	}
	g, ok := normalize(guess)
	if !ok {
		return r.outcome(guess, 0), fmt.Errorf("%w: %q is not a letter", ErrInvalidGuess, guess)
	}

	fams, err := Partition(g, r.Candidates, r.Pattern)
	if err != nil {
		return r.outcome(g, 0), err
	}
	kept, err := Select(fams)
	if err != nil {
		return r.outcome(g, 0), err
	}

	r.Pattern = kept.Pattern
	r.Candidates = kept.Members
	r.Guessed = append(r.Guessed, string(g))
	r.GuessesLeft--

	switch {
	case Blanks(r.Pattern) == 0:
		r.State = StateWon
	case r.GuessesLeft == 0:
		r.State = StateLost
	}
	return r.outcome(g, len(fams)), nil
}

// Finished reports whether the round reached won or lost.
func (r *Round) Finished() bool {
	return r.State == StateWon || r.State == StateLost
}

// Word is the word the round reports once finished, or "" while playing.
func (r *Round) Word() string {
	switch r.State {
	case StateWon:
		return r.Pattern
	case StateLost:
		if len(r.Candidates) > 0 {
			return r.Candidates[0]
		}
	}
	return ""
}

func (r *Round) outcome(guess byte, families int) Outcome {
	return Outcome{
		Guess:       guess,
		Pattern:     r.Pattern,
		State:       r.State,
		GuessesLeft: r.GuessesLeft,
		Remaining:   len(r.Candidates),
		Families:    families,
		Word:        r.Word(),
	}
}

// normalize folds an ASCII letter to lower case and rejects anything else.
func normalize(c byte) (byte, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return c, true
	case c >= 'A' && c <= 'Z':
		return c + ('a' - 'A'), true
	}
	return c, false
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// Clone returns a deep copy of the round.
func (r *Round) Clone() *Round {
	c := *r
	c.Candidates = append([]string(nil), r.Candidates...)
	c.Guessed = append([]string{}, r.Guessed...)
	return &c
}
