// This file maps the CLI context and an optional TOML file onto Config.

package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-reclaim/integration"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Node    NodeConfig    `toml:"node"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	Sentry  SentryConfig  `toml:"sentry"`
}

type NodeConfig struct {
	DataDir string `toml:"datadir"`
	Name    string `toml:"name"`
}

type StorageConfig struct {
	Preset string `toml:"preset"`
}

type LoggingConfig struct {
	Verbosity int    `toml:"verbosity"`
	Format    string `toml:"format"`
	Color     bool   `toml:"color"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN string `toml:"dsn"`
}

func defaultConfig() Config {
	def := DefaultConfig()
	return Config{
		Node: NodeConfig{
			DataDir: resolvePath(def.Node.DataDir),
			Name:    def.Node.Name,
		},
		Storage: StorageConfig{
			Preset: def.Storage.Preset,
		},
		Logging: LoggingConfig{
			Verbosity: def.Logging.Verbosity,
			Format:    def.Logging.Format,
			Color:     def.Logging.Color,
		},
	}
}

// MakeAllConfigs merges defaults, config-file values and CLI overrides into a
// single config struct. Flags may be given before or after the command name.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := stringFlag(ctx, "config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := integration.GetPresetByName(c.Storage.Preset); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", c.Logging.Format)
	}
	return nil
}

func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Node.DataDir = resolvePath(cfg.Node.DataDir)
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if isSet(ctx, "datadir") {
		cfg.Node.DataDir = resolvePath(stringFlag(ctx, "datadir"))
	}
	if isSet(ctx, "storage") {
		cfg.Storage.Preset = stringFlag(ctx, "storage")
	}

	if isSet(ctx, "log.format") {
		cfg.Logging.Format = stringFlag(ctx, "log.format")
	}
	if isSet(ctx, "log.verbosity") {
		if ctx.IsSet("log.verbosity") {
			cfg.Logging.Verbosity = ctx.Int("log.verbosity")
		} else {
			cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
		}
	}
	if isSet(ctx, "log.color") {
		if ctx.IsSet("log.color") {
			cfg.Logging.Color = ctx.Bool("log.color")
		} else {
			cfg.Logging.Color = ctx.GlobalBool("log.color")
		}
	}

	if isSet(ctx, "sentry.dsn") {
		cfg.Sentry.DSN = stringFlag(ctx, "sentry.dsn")
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// isSet reports whether name was given on the command or on the app.
func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	return ctx.GlobalString(name)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
