package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oshokin/version-bumper/internal/git"
	"github.com/oshokin/version-bumper/internal/logger"
	"github.com/oshokin/version-bumper/internal/version"
)

var (
	// repoDir is an explicit repository path overriding discovery.
	repoDir string
	// logLevel filters log output.
	logLevel string
	// detailedLogs switches on the detailed logging profile.
	detailedLogs bool

	// rootCmd represents the base command all subcommands attach to.
	rootCmd = &cobra.Command{
		Use:   "version-bumper",
		Short: "Bump project versions and create matching git tags.",
		Long: `version-bumper automates the release chore of a git repository:
it derives the next version from the most recent tag, rewrites Cargo.toml
and pyproject.toml version fields, records a single bump commit, creates
an annotated tag and pushes everything upstream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return configureLogging()
		},
	}
)

// Execute runs the version-bumper CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = color.New(color.FgHiRed).Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}

// configureLogging applies the --level and --detailed flags to the
// global logger before any command runs.
func configureLogging() error {
	level, ok := logger.ParseLogLevel(logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", logLevel)
	}

	logger.SetLevel(level)
	logger.SetLogger(logger.New(nil, detailedLogs))

	return nil
}

// resolveRepoDir returns the repository root: the --dir value when
// given, otherwise the root found by walking up from the working
// directory.
func resolveRepoDir() (string, error) {
	if repoDir != "" {
		return filepath.Abs(repoDir)
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}

	return git.LocateRoot(workingDir)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&repoDir, "dir", "d", "", "path to the git repository (default: inferred from the working directory)")
	rootCmd.PersistentFlags().
		StringVarP(&logLevel, "level", "l", "info", "logging level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().
		BoolVar(&detailedLogs, "detailed", false, "include timestamps and caller locations in log output")
}
