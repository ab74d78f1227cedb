// internal/words/words.go
//
// Provides the lexicon: every playable word grouped by length.
//
// Responsibilities:
//   - Parse newline-delimited word lists into a Lexicon.
//   - Load from a file path or fall back to the embedded default dictionary.
//   - Answer length queries (Words, Has, Lengths) for the round engine.
//
// Word list format:
//   - One word per line, no header; length comes from the word itself.
//   - Lines are trimmed and lowercased.
//   - Blank lines and lines starting with "#" are skipped.
//   - Entries with anything other than a–z are skipped.
//   - Duplicates are dropped; the first occurrence keeps its position.
//
// A Lexicon is immutable once built and safe to share between goroutines.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/evilhangman/assets"
)

// ErrEmptyLexicon is returned when a source yields no usable words.
var ErrEmptyLexicon = errors.New("words: lexicon is empty")

// Lexicon maps a word length to the words of that length, in source order.
type Lexicon struct {
	byLen map[int][]string
	size  int
}

// New builds a lexicon from an in-memory list, applying the same
// normalization as Parse.
func New(list []string) (*Lexicon, error) {
	lx := &Lexicon{byLen: make(map[int][]string)}
	seen := make(map[string]struct{}, len(list))
	for _, raw := range list {
		w := strings.TrimSpace(strings.ToLower(raw))
		if w == "" || strings.HasPrefix(w, "#") || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		lx.byLen[len(w)] = append(lx.byLen[len(w)], w)
		lx.size++
	}
	if lx.size == 0 {
		return nil, ErrEmptyLexicon
	}
	return lx, nil
}

// Parse reads one word per line from r.
func Parse(r io.Reader) (*Lexicon, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read: %w", err)
	}
	return New(lines)
}

// Open loads the lexicon at path, or the embedded dictionary when path is empty.
func Open(path string) (*Lexicon, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if path == "" {
		rc, err = assets.Dictionary()
	} else {
		rc, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: open: %w", err)
	}
	defer rc.Close()
	return Parse(rc)
}

// Words returns the words of length n in source order. Callers must not modify the slice.
func (lx *Lexicon) Words(n int) []string {
	return lx.byLen[n]
}

// Has reports whether any word of length n exists.
func (lx *Lexicon) Has(n int) bool {
	return len(lx.byLen[n]) > 0
}

// Lengths returns every available word length, ascending.
func (lx *Lexicon) Lengths() []int {
	out := make([]int, 0, len(lx.byLen))
	for n := range lx.byLen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Size is the total number of words.
func (lx *Lexicon) Size() int {
	return lx.size
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
