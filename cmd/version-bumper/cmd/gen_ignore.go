package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/version-bumper/internal/service/ignore"
)

// genIgnoreCmd wires the .gitignore generator into the CLI.
var genIgnoreCmd = &cobra.Command{
	Use:   "gen-ignore",
	Short: "Print a .gitignore skeleton from the current git status.",
	Long: `Lists everything git currently reports as untracked or ignored, split
into directories and files, as root-anchored .gitignore patterns.

The listing goes to stdout so it can be reviewed or piped:

  version-bumper gen-ignore >> .gitignore`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := resolveRepoDir()
		if err != nil {
			return err
		}

		return ignore.Run(cmd.Context(), &ignore.Options{
			RepoDir: dir,
			Out:     cmd.OutOrStdout(),
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(genIgnoreCmd)
}
