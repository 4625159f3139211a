package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	simplelang "go.simplelang.dev/pkg"
)

func newParseCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree of a source file",
		Long: `Parse prints the syntax tree of a source file. On a syntax error the
statements parsed before it are still printed and the command fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			format, err := simplelang.ParseFormat(opts.cfg.Format)
			if err != nil {
				return err
			}

			frontend := simplelang.NewFrontend(simplelang.WithMaxDepth(opts.cfg.MaxDepth))
			program, parseErr := frontend.FromString(src)
			if program == nil {
				return fmt.Errorf("tokenize failed: %w", parseErr)
			}

			if err := simplelang.Encode(cmd.OutOrStdout(), program, format); err != nil {
				return fmt.Errorf("failed to print tree: %w", err)
			}

			if parseErr != nil {
				return fmt.Errorf("parse failed: %w", parseErr)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (json, yaml, dump)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", simplelang.DefaultMaxDepth, "maximum nesting depth, 0 for no limit")

	return cmd
}
