package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	simplelang "go.simplelang.dev/pkg"
)

type options struct {
	cfgFile  string
	logLevel string
	format   string
	maxDepth int

	cfg Config
}

// NewRootCommand builds the simplelang command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "simplelang",
		Short: "SimpleLang tokenizer and parser",
		Long: `simplelang turns SimpleLang source into tokens or a syntax tree.

Commands:
  tokens  - print the token stream
  parse   - print the syntax tree as json, yaml or a Go dump`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (panic, fatal, error, warning, info, debug, trace)")

	root.AddCommand(newTokensCommand(opts))
	root.AddCommand(newParseCommand(opts))

	return root
}

// Execute runs the command tree with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(o.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Lookup("max-depth") != nil && flags.Changed("max-depth") {
		cfg.MaxDepth = o.maxDepth
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := simplelang.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	simplelang.SetLogOutput(cmd.ErrOrStderr())

	o.cfg = cfg
	return nil
}

// readSource reads the named file, or stdin for "" and "-".
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}

	return string(data), nil
}
