// assets/embed.go
//
// Embedded resources:
//   - dictionary.txt: default lexicon, one word per line.
//   - sql/*.sql:      SQLite migrations for the lexicon database.

package assets

import (
	"embed"
	"io"
)

//go:embed dictionary.txt sql/*.sql
var FS embed.FS

// Dictionary opens the embedded default word list.
func Dictionary() (io.ReadCloser, error) {
	return FS.Open("dictionary.txt")
}
