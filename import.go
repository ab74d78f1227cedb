package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/words"
)

func newImportCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "import [word-file]",
		Short: "Load a word list into the SQLite lexicon database",
		Long: `Reads a newline-delimited word list (or the embedded dictionary when no
file is given) and replaces the contents of the database named by --db.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.WordsDB == "" {
				return errors.New("import needs a database: pass --db or set WORDS_DB")
			}
			src := ""
			if len(args) == 1 {
				src = args[0]
			}
			lex, err := words.Open(src)
			if err != nil {
				return err
			}

			db, err := words.OpenDB(cfg.WordsDB)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := words.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			if err := lex.Store(cmd.Context(), db); err != nil {
				return fmt.Errorf("store lexicon: %w", err)
			}
			log.Info().Str("db", cfg.WordsDB).Int("words", lex.Size()).Msg("lexicon imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words into %s\n", lex.Size(), cfg.WordsDB)
			return nil
		},
	}
}
