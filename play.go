package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/evilhangman/internal/console"
	"github.com/robalobadob/evilhangman/internal/daily"
)

func newPlayCmd(cfg *config) *cobra.Command {
	var dailyMode bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play evil hangman in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := loadLexicon(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			var opts []console.Option
			if dailyMode {
				n := daily.PickLength(time.Now(), cfg.DailySalt, lex.Lengths())
				log.Debug().Int("length", n).Str("date", daily.DateKey(time.Now())).Msg("daily length")
				opts = append(opts, console.WithDailyLength(n))
			}
			return console.NewSession(lex, cmd.InOrStdin(), cmd.OutOrStdout(), opts...).Run()
		},
	}
	cmd.Flags().BoolVar(&dailyMode, "daily", false, "use today's word length instead of asking")
	return cmd
}
