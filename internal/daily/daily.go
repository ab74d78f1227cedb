// Package daily picks the word length of the day, so every player on a
// given date gets the same challenge.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes give an even enough spread for small n
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// PickLength returns the length of the day from lengths, which should be
// sorted so the choice is stable across processes. Returns 0 when lengths is empty.
func PickLength(date time.Time, salt string, lengths []int) int {
	if len(lengths) == 0 {
		return 0
	}
	return lengths[Index(date, salt, len(lengths))]
}
