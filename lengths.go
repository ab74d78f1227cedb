package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLengthsCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "lengths",
		Short: "List the word lengths available in the lexicon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := loadLexicon(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %s\n", "LENGTH", "WORDS")
			for _, n := range lex.Lengths() {
				fmt.Fprintf(out, "%-8d %d\n", n, len(lex.Words(n)))
			}
			fmt.Fprintf(out, "%d words total\n", lex.Size())
			return nil
		},
	}
}
