// internal/console/prompt.go
//
// Prompter reads whitespace-separated answers from an input stream and
// re-asks until the answer is acceptable. Malformed input never escapes as
// an error; the only error is the input running out.

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrInputClosed means the player's input ended before an answer was given.
var ErrInputClosed = errors.New("input closed")

// maxAnswer caps the length of a single answer. Longer answers are
// discarded and read back as "", which every question rejects.
const maxAnswer = 1024

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads tokens from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	sc := bufio.NewScanner(in)
	sp := &wordSplitter{}
	sc.Split(sp.split)
	return &Prompter{in: sc, out: out}
}

// wordSplitter splits like bufio.ScanWords but never lets a token outgrow
// maxAnswer: an overlong token yields one empty token and the rest of it,
// up to the next space, is dropped.
type wordSplitter struct {
	skipping bool
}

func (w *wordSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	if w.skipping {
		for i, c := range data {
			if isSpace(c) {
				w.skipping = false
				return i, nil, nil
			}
		}
		return len(data), nil, nil
	}
	adv, tok, err := bufio.ScanWords(data, atEOF)
	switch {
	case err != nil:
		return adv, tok, err
	case tok != nil && len(tok) > maxAnswer:
		return adv, []byte{}, nil
	case tok == nil && len(data)-adv >= maxAnswer:
		w.skipping = true
		return len(data), []byte{}, nil
	}
	return adv, tok, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// token prints msg and returns the next answer.
func (p *Prompter) token(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", ErrInputClosed
	}
	return p.in.Text(), nil
}

// YesNo asks msg until the answer is "y" or "n".
func (p *Prompter) YesNo(msg string) (bool, error) {
	for {
		ans, err := p.token(msg)
		if err != nil {
			return false, err
		}
		switch ans {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please respond with either yes (y) or no (n).")
	}
}

// Int asks msg until the answer is an integer accepted by valid.
// valid returns the retry message for rejected values, or "" to accept.
func (p *Prompter) Int(msg string, valid func(int) string) (int, error) {
	for {
		ans, err := p.token(msg)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(ans)
		if err != nil {
			continue
		}
		if retry := valid(n); retry != "" {
			fmt.Fprintln(p.out, retry)
			continue
		}
		return n, nil
	}
}

// Letter asks msg until the answer is a single ASCII letter, returned lower-cased.
// Longer answers are not cut down to their first character and non-letters
// are not played; both are re-asked without costing a guess.
func (p *Prompter) Letter(msg string) (byte, error) {
	for {
		ans, err := p.token(msg)
		if err != nil {
			return 0, err
		}
		if len(ans) == 1 {
			switch c := ans[0]; {
			case c >= 'a' && c <= 'z':
				return c, nil
			case c >= 'A' && c <= 'Z':
				return c + ('a' - 'A'), nil
			}
		}
		fmt.Fprintln(p.out, "Please enter a single letter.")
	}
}
