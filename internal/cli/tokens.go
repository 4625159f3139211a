package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	simplelang "go.simplelang.dev/pkg"
)

func newTokensCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			tokens, err := simplelang.Tokenize(src)
			if err != nil {
				return fmt.Errorf("tokenize failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%-16s %s\n", tok.Typ, tok.Value)
			}

			return nil
		},
	}
}
