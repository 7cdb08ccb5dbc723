// Package main provides the riverlog CLI, a local-first fishing log. All
// data lives in a SQLite database under the data directory; nothing ever
// leaves the machine except through explicit exports.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tightlines/riverlog/internal/paths"
	"github.com/tightlines/riverlog/pkg/types"
)

// Exit codes: 1 for user errors (bad ids, malformed archives), 2 for
// system errors (unreadable config or database).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "riverlog",
	Short:   "RiverLog is a local-first fishing trip log",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.riverlog)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.riverlog-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tripCmd)
	rootCmd.AddCommand(catchCmd)
	rootCmd.AddCommand(boxCmd)
	rootCmd.AddCommand(flyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode classifies an error for the shell.
func exitCode(err error) int {
	var mismatch *types.SchemaMismatchError
	var missing *types.MissingManifestError
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrCorruptContainer),
		errors.As(err, &mismatch),
		errors.As(err, &missing):
		return exitUserError
	default:
		return exitSysError
	}
}

// resolveDataDir returns the data directory path, precedence:
// --data-dir flag > config.yaml data_dir > RIVERLOG_DATA_DIR env >
// default $(CWD)/.riverlog-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory path, precedence:
// --config-dir flag > RIVERLOG_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
