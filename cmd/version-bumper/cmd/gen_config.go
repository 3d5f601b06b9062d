package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/version-bumper/internal/config"
	"github.com/oshokin/version-bumper/internal/service/genconfig"
)

var (
	// forceConfig overwrites an existing configuration file.
	forceConfig bool

	// genConfigCmd wires manifest discovery into the CLI.
	genConfigCmd = &cobra.Command{
		Use:   "gen-config",
		Short: "Freeze the discovered manifest list into " + config.Filename + ".",
		Long: `Walks the repository, collects every Cargo.toml and pyproject.toml and
writes the list into ` + config.Filename + ` at the repository root.

Later bumps read that file instead of walking the tree, so the set of
rewritten manifests stays reviewed and explicit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := resolveRepoDir()
			if err != nil {
				return err
			}

			return genconfig.Run(cmd.Context(), &genconfig.Options{
				RepoDir: dir,
				Force:   forceConfig,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	genConfigCmd.Flags().BoolVar(&forceConfig, "force", false, "overwrite an existing configuration file")
	rootCmd.AddCommand(genConfigCmd)
}
