package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"splashd/internal/config"
)

// flagConfig maps command line flags onto config fields. Only flags the user
// actually set override lower layers.
var flagConfig = []struct {
	name  string
	apply func(c *config.Config, v string)
}{
	{"addr", func(c *config.Config, v string) { c.Addr = v }},
	{"games-dir", func(c *config.Config, v string) { c.GamesDir = v }},
	{"prefix", func(c *config.Config, v string) { c.Prefix = v }},
	{"version-label", func(c *config.Config, v string) { c.VersionLabel = v }},
	{"consent-domain", func(c *config.Config, v string) { c.ConsentDomain = v == "true" }},
	{"container-id", func(c *config.Config, v string) { c.SplashContainerID = v }},
	{"default-lang", func(c *config.Config, v string) { c.DefaultLang = v }},
	{"failure-policy", func(c *config.Config, v string) { c.FailurePolicy = v }},
	{"log-level", func(c *config.Config, v string) { c.LogLevel = v }},
	{"log-format", func(c *config.Config, v string) { c.LogFormat = v }},
	{"cors-origins", func(c *config.Config, v string) { c.CORSOrigins = splitCSV(v) }},
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "splashd",
		Short:         "Serve game splash screens and relay their events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .yml, .json, .toml)")
	pf.String("env-file", config.DefaultEnvFile, "Dotenv file loaded before reading SPLASHD_* variables")
	pf.String("games-dir", "", "Directory of game descriptor files (default ./games)")
	pf.String("prefix", "", "CSS class and element id prefix (default idhb-)")
	pf.String("version-label", "", "Version shown in the splash corner")
	pf.Bool("consent-domain", false, "Show the advertising consent text")
	pf.String("container-id", "", "Host element id the overlay is inserted into")
	pf.String("default-lang", "", "Consent language when the request has none (default en)")
	pf.String("failure-policy", "", "Listener failure policy: fail-fast|isolate")
	pf.String("log-level", "", "Log level: debug|info|warn|error|off")
	pf.String("log-format", "", "Log format: json|text")

	root.AddCommand(newServeCmd(), newRenderCmd())
	return root
}

// splitCSV splits a comma separated flag value, dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveConfig layers defaults < config file < environment < flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	envFile, _ := flags.GetString("env-file")
	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	if err := config.ApplyEnv(&cfg, envFiles...); err != nil {
		return cfg, err
	}

	for _, fc := range flagConfig {
		f := flags.Lookup(fc.name)
		if f == nil || !f.Changed {
			continue
		}
		fc.apply(&cfg, f.Value.String())
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the process logger. "text" writes human readable lines.
func newLogger(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if format == "text" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	lvl := zerolog.InfoLevel
	switch level {
	case "off":
		lvl = zerolog.Disabled
	case "":
	default:
		if l, err := zerolog.ParseLevel(level); err == nil {
			lvl = l
		}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
