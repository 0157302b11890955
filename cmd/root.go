// Package cmd implements the html2md CLI using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/html2md/internal/config"
	"github.com/gaurav-prasanna/html2md/internal/logger"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var (
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
	flagTempDir  string
)

// Loaded by the root command before any subcommand runs.
var (
	appCfg *config.Config
	appLog *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "html2md",
	Short: "html2md: convert web pages into clean Markdown for AI agents",
	Long: `html2md fetches a web page (over plain HTTP or in a real browser), strips
scripts, navigation and other boilerplate, and converts the main content to
Markdown. Documents over a token budget are summarized with a table of
contents, and single sections can be requested by id or heading.

Usage:
  html2md serve               # MCP server on stdio
  html2md convert <url>       # one-shot conversion`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write JSON logs to this file instead of stderr")
	pf.StringVar(&flagTempDir, "temp-dir", "", "Directory for saved html2md_*.md files (default: system temp)")
}

// setup loads the config file, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("temp-dir") {
		cfg.Output.TempDir = flagTempDir
	}
	applyServeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	appCfg = cfg
	appLog = log
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
