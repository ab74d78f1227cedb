package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/words"
)

func newRootCmd(cfg config) *cobra.Command {
	play := newPlayCmd(&cfg)
	root := &cobra.Command{
		Use:   "evilhangman",
		Short: "Hangman where the computer never commits to a word",
		Long: `Evil hangman keeps every word consistent with your guesses in play and,
after each letter, keeps the largest family of words it can. Run without a
subcommand to play in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
			}
			zerolog.SetGlobalLevel(lvl)
			setupLogger(cmd)
			return nil
		},
		RunE: play.RunE,
	}
	root.Flags().AddFlagSet(play.Flags())

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file, one word per line (default: embedded dictionary)")
	pf.StringVar(&cfg.WordsDB, "db", cfg.WordsDB, "SQLite lexicon database (overrides --words)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	root.AddCommand(play, newServeCmd(&cfg), newImportCmd(&cfg), newLengthsCmd(&cfg))
	return root
}

// setupLogger keeps structured JSON logs for serve and switches the
// interactive commands to console output.
func setupLogger(cmd *cobra.Command) {
	if cmd.Name() == "serve" {
		log.Logger = zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
		return
	}
	w := cmd.ErrOrStderr()
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: noColor})
}

// loadLexicon reads the lexicon from the database when one is configured,
// otherwise from the word file or the embedded dictionary.
func loadLexicon(ctx context.Context, cfg *config) (*words.Lexicon, error) {
	var (
		lx     *words.Lexicon
		err    error
		source string
	)
	switch {
	case cfg.WordsDB != "":
		source = cfg.WordsDB
		lx, err = words.OpenStored(ctx, cfg.WordsDB)
	case cfg.WordsFile != "":
		source = cfg.WordsFile
		lx, err = words.Open(cfg.WordsFile)
	default:
		source = "embedded"
		lx, err = words.Open("")
	}
	if err != nil {
		return nil, fmt.Errorf("load word lists from %s: %w", source, err)
	}
	log.Debug().Str("source", source).Int("words", lx.Size()).Ints("lengths", lx.Lengths()).Msg("lexicon loaded")
	return lx, nil
}
