// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"refbook/internal/config"
	"refbook/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// sheetPaths holds explicit sheet files passed via --sheet
	sheetPaths []string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "refbook",
		Short: "A terminal reference catalog for markdown cheat sheets",
		Long: TitleStyle.Render("refbook") + SubtitleStyle.Render(" - A terminal reference catalog for markdown cheat sheets") + `

refbook turns markdown cheat sheets into a queryable catalog of topics.
Sheets are plain markdown files with a heading per topic; refbook indexes
the headings, renders topics for the terminal, and checks sheets for
structural defects (broken TOC anchors, ragged tables, unclosed fences).

Sheets are discovered from the current directory, ~/.refbook/sheets, and
any configured search paths; --sheet pins a specific file.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'refbook init' to scaffold a starter sheet
  2. Add topics as markdown headings with code blocks and tables
  3. Look things up with: refbook show <topic>

` + SubtitleStyle.Render("Examples:") + `
  refbook topics            List every topic in the catalog
  refbook show git-log      Print the 'git-log' topic
  refbook show git-log -c   Print only its code snippets
  refbook search rebase     Find topics matching 'rebase'
  refbook browse            Browse topics interactively
  refbook lint              Check sheets for structural defects`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/refbook/config.cue)")
	rootCmd.PersistentFlags().StringArrayVarP(&sheetPaths, "sheet", "s", nil, "sheet file to load (repeatable, takes precedence over discovery)")

	// Add subcommands
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(tocCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
