package cmd

import (
	"github.com/spf13/cobra"

	domain "github.com/oshokin/version-bumper/internal/domain/version"
	"github.com/oshokin/version-bumper/internal/service/bump"
)

var (
	// noPushAll skips pushing commits and tags after tagging.
	noPushAll bool

	// bumpVersionCmd wires the bump pipeline into the CLI.
	bumpVersionCmd = &cobra.Command{
		Use:   "bump-version [version]",
		Short: "Update manifest versions, commit, tag and push.",
		Long: `Derives the next version by incrementing the least significant component
of the most recent tag (or uses the given version verbatim), rewrites the
version field of every Cargo.toml and pyproject.toml, records a single
bump commit, creates an annotated tag and pushes commits and tags.

The repository must be on the main or master branch with a clean working
tree and a configured upstream.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveRepoDir()
			if err != nil {
				return err
			}

			options := &bump.Options{
				RepoDir: dir,
				NoPush:  noPushAll,
			}

			if len(args) > 0 {
				explicit, err := domain.Parse(args[0])
				if err != nil {
					return err
				}

				options.Version = &explicit
			}

			return bump.Run(cmd.Context(), options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	bumpVersionCmd.Flags().BoolVar(&noPushAll, "no-push-all", false, "do not push commits and tags after tagging")
	rootCmd.AddCommand(bumpVersionCmd)
}
