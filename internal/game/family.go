// internal/game/family.go
//
// Word families: partitioning candidates by revealed pattern and choosing
// the family the adversary keeps.
//
// Selection order:
//   1. Most members.
//   2. Most blanks remaining in the pattern.
//   3. Lexicographically smallest pattern, so results are reproducible.

package game

import "fmt"

// Partition groups candidates by the pattern each renders to for guess.
// Every candidate lands in exactly one family; candidates is not modified.
func Partition(guess byte, candidates []string, prior string) (Families, error) {
	out := make(Families)
	for _, w := range candidates {
		if len(w) != len(prior) {
			return nil, fmt.Errorf("partition %q against %q: %w", w, prior, ErrLengthMismatch)
		}
		key := Render(guess, w, prior)
		f, ok := out[key]
		if !ok {
			f = &Family{Pattern: key}
			out[key] = f
		}
		f.Count++
		f.Members = append(f.Members, w)
	}
	return out, nil
}

// Select picks the family that keeps the most words in play.
func Select(fams Families) (*Family, error) {
	if len(fams) == 0 {
		return nil, ErrNoFamilies
	}
	var best *Family
	bestBlanks := 0
	for _, f := range fams {
		blanks := Blanks(f.Pattern)
		if best == nil || better(f, blanks, best, bestBlanks) {
			best, bestBlanks = f, blanks
		}
	}
	return best, nil
}

// better reports whether f outranks the current best.
func better(f *Family, blanks int, best *Family, bestBlanks int) bool {
	switch {
	case f.Count != best.Count:
		return f.Count > best.Count
	case blanks != bestBlanks:
		return blanks > bestBlanks
	default:
		return f.Pattern < best.Pattern
	}
}
