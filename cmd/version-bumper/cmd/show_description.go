package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/version-bumper/internal/service/show"
)

// showDescriptionCmd wires the read-only describe report into the CLI.
var showDescriptionCmd = &cobra.Command{
	Use:   "show-description",
	Short: "Show the current git description and the next version.",
	Long: `Prints what git describe reports for the repository (most recent tag and
the offset to it) together with the version a bump would derive from it.
Nothing is modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := resolveRepoDir()
		if err != nil {
			return err
		}

		return show.Run(cmd.Context(), &show.Options{
			RepoDir: dir,
			Out:     cmd.OutOrStdout(),
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(showDescriptionCmd)
}
