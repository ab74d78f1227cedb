// internal/console/session.go
//
// Interactive terminal surface: asks whether to play, collects the word length
// and guess count, then drives one game.Round per accepted "y" until the
// player answers "n" or input ends.
//
// Output is styled with lipgloss using a renderer bound to the output writer,
// so plain writers (pipes, tests) get plain text.

package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/evilhangman/internal/game"
	"github.com/robalobadob/evilhangman/internal/words"
)

const banner = "=============================================="

type styles struct {
	pattern lipgloss.Style
	guessed lipgloss.Style
	win     lipgloss.Style
	loss    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		pattern: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		guessed: r.NewStyle().Faint(true),
		win:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		loss:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Session plays rounds against a lexicon over a text stream.
type Session struct {
	lex         *words.Lexicon
	prompt      *Prompter
	out         io.Writer
	st          styles
	dailyLength int
}

// Option configures a Session.
type Option func(*Session)

// WithDailyLength fixes the word length instead of asking for it.
func WithDailyLength(n int) Option {
	return func(s *Session) {
		s.dailyLength = n
	}
}

// NewSession builds a session reading answers from in and writing to out.
func NewSession(lex *words.Lexicon, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		lex:    lex,
		prompt: NewPrompter(in, out),
		out:    out,
		st:     newStyles(out),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops over rounds until the player declines or input ends.
// A returned error means a round's invariants broke and the process should stop.
func (s *Session) Run() error {
	for {
		play, err := s.prompt.YesNo("Shall we play? (y/n): \n")
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if !play {
			fmt.Fprintln(s.out, "See you next time!")
			return nil
		}
		if err := s.PlayRound(); err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}
	}
}

// PlayRound asks for the round's settings and plays it to the end.
func (s *Session) PlayRound() error {
	length := s.dailyLength
	if length > 0 && s.lex.Has(length) {
		fmt.Fprintf(s.out, "Today's word is %d letters long.\n", length)
	} else {
		var err error
		length, err = s.prompt.Int("How long do you want your word to be?: ", func(n int) string {
			if !s.lex.Has(n) {
				return "Sorry, we don't have any words of that length. Try again"
			}
			return ""
		})
		if err != nil {
			return err
		}
	}
	guesses, err := s.prompt.Int("How many guesses do you want?: ", func(n int) string {
		if n <= 0 {
			return "You need at least one guess. Try again"
		}
		return ""
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Your chosen length is: %d.\n", length)
	fmt.Fprintf(s.out, "Your chosen # of guesses is: %d. Let us begin!\n%s\n\n", guesses, banner)

	rd, err := game.NewRound(s.lex.Words(length), length, guesses)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	log.Debug().Str("round", rd.ID).Int("length", length).Int("candidates", len(rd.Candidates)).Msg("round started")
	return s.play(rd)
}

func (s *Session) play(rd *game.Round) error {
	for !rd.Finished() {
		fmt.Fprintf(s.out, "The current state: \n%s\n", s.st.pattern.Render(rd.Pattern))
		if len(rd.Guessed) > 0 {
			fmt.Fprintln(s.out, s.st.guessed.Render("Guessed so far: "+strings.Join(rd.Guessed, " ")))
		}
		fmt.Fprintf(s.out, "%d guesses left.\n\n", rd.GuessesLeft)

		g, err := s.prompt.Letter("Guess a letter: ")
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "You guessed: %c\n", g)

		out, err := rd.ApplyGuess(g)
		if err != nil {
			return fmt.Errorf("apply guess %q: %w", g, err)
		}
		log.Debug().Str("round", rd.ID).Str("guess", string(g)).Int("families", out.Families).
			Int("remaining", out.Remaining).Str("pattern", out.Pattern).Msg("guess applied")
	}

	switch rd.State {
	case game.StateWon:
		fmt.Fprintf(s.out, "Hey! You won! The word was: %s\n", s.st.win.Render(rd.Word()))
	case game.StateLost:
		fmt.Fprintf(s.out, "Womp womp! You lost...the word was: %s\n", s.st.loss.Render(rd.Word()))
	}
	return nil
}
