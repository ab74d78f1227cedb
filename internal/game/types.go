// internal/game/types.go
//
// Core type definitions for the evil hangman engine.
// Defines:
//   - State: coarse lifecycle of a round (playing/won/lost).
//   - Family: one group of candidates sharing a revealed pattern.
//   - Round: state for a single in-progress or finished round.

package game

import "errors"

// Blank marks an unrevealed position in a pattern.
const Blank = '-'

// State is the lifecycle of a round.
//   - "playing": awaiting the next guess.
//   - "won":     every position has been revealed.
//   - "lost":    guesses ran out while blanks remain.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

var (
	ErrInvalidRound   = errors.New("invalid round")
	ErrInvalidGuess   = errors.New("invalid guess")
	ErrRoundFinished  = errors.New("round finished")
	ErrLengthMismatch = errors.New("word and pattern length differ")
	ErrNoFamilies     = errors.New("no word families to select from")
)

// Family is a bucket of candidates that render to the same pattern for a guess.
type Family struct {
	Pattern string
	Count   int
	Members []string
}

// Families maps a pattern to its family. Built fresh for every guess.
type Families map[string]*Family

// Round holds the state of a single evil hangman round.
// Fields are exported so stores can serialize a round; mutate only through ApplyGuess.
type Round struct {
	ID          string   `json:"id"`          // Unique round identifier (random hex string).
	Length      int      `json:"length"`      // Word length chosen at start.
	Pattern     string   `json:"pattern"`     // Revealed letters and blanks.
	Candidates  []string `json:"candidates"`  // Words still consistent with Pattern, lexicon order.
	GuessesLeft int      `json:"guessesLeft"` // Remaining guesses.
	Guessed     []string `json:"guessed"`     // Letters guessed so far, repeats included.
	State       State    `json:"state"`
}

// Outcome reports the result of a single guess.
type Outcome struct {
	Guess       byte
	Pattern     string
	State       State
	GuessesLeft int
	Remaining   int    // candidates surviving the guess
	Families    int    // families the guess split the candidates into
	Word        string // set once the round is finished
}
