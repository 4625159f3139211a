package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	simplelang "go.simplelang.dev/pkg"
)

// Config is read from the file given with --config. Flags override it.
type Config struct {
	LogLevel string `toml:"log_level"`
	Format   string `toml:"format"`
	MaxDepth int    `toml:"max_depth"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "warning",
		Format:   string(simplelang.FormatJSON),
		MaxDepth: simplelang.DefaultMaxDepth,
	}
}

// LoadConfig decodes path over the defaults. An empty path gives the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return cfg, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	if _, err := simplelang.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d: must not be negative", c.MaxDepth)
	}

	return nil
}
