// Package cli provides the command-line interface for gocache.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lrucache/internal/config"
	"lrucache/internal/logging"
)

// NewRootCmd creates the root command for gocache.
//
// Commands are read from --file, or from the command's stdin when no file is given.
// Logs go to the command's stderr, results to its stdout.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()
	var configFile string

	cmd := &cobra.Command{
		Use:   "gocache",
		Short: "Drive an in-memory LRU cache from a command script",
		Long: `gocache reads one command per line and applies it to an LRU cache:

  put <key> <value>   insert or replace, marks key most recently used
  get <key>           print the value (or (nil)), marks key most recently used
  peek <key>          print the value without touching recency
  len                 print the number of entries
  keys                print keys from most to least recently used

Blank lines and lines starting with # are ignored.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			log := logging.WithComponent(logging.New(cfg.LoggerConfig(), cmd.ErrOrStderr()), "cache")
			log.Debug().Int("capacity", cfg.Capacity).Str("file", cfg.File).Msg("starting")

			var input io.Reader = cmd.InOrStdin()
			if cfg.File != "" {
				f, err := os.Open(cfg.File)
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				input = f
			}

			in := NewInterpreter(cfg.Capacity, cmd.OutOrStdout(), log)
			return in.Run(cmd.Context(), input)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default ./gocache.{yaml,json,toml} if present)")
	flags.IntP("capacity", "n", config.Default().Capacity, "maximum number of cache entries")
	flags.StringP("file", "f", "", "script file to execute (default stdin)")
	flags.String("log-level", config.Default().Logging.Level, "log level: trace, debug, info, warn, error")
	flags.String("log-format", config.Default().Logging.Format, "log format: console or json")

	bindings := map[string]string{
		"capacity":       "capacity",
		"file":           "file",
		"logging.level":  "log-level",
		"logging.format": "log-format",
	}
	for key, flag := range bindings {
		// BindPFlag only fails on a nil flag, and every flag above exists.
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}
