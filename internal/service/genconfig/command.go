// Package genconfig implements gen-config: discover the repository's
// package manifests and freeze the list into the repo-local
// configuration file, so later bumps stop walking the tree and stay
// pinned to a reviewed set of manifests.
package genconfig

import (
	"context"
	"path/filepath"

	"github.com/oshokin/version-bumper/internal/config"
	"github.com/oshokin/version-bumper/internal/logger"
	"github.com/oshokin/version-bumper/internal/manifest"
)

// Options are inputs accepted by the gen-config entry point.
type Options struct {
	// RepoDir is the repository root to inspect.
	RepoDir string
	// Force overwrites an existing configuration file.
	Force bool
}

// Run walks the repository, collects its manifests and writes them
// into the configuration file at the repository root.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "gen-config")

	info, err := manifest.Infer(opts.RepoDir)
	if err != nil {
		return err
	}

	cfg := &config.Config{
		CargoTomlPaths:     relativeAll(opts.RepoDir, info.CargoPaths),
		PyProjectTomlPaths: relativeAll(opts.RepoDir, info.PyProjectPaths),
	}

	if err = config.Save(opts.RepoDir, cfg, opts.Force); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Wrote configuration",
		"path", config.Path(opts.RepoDir),
		"cargo_manifests", len(cfg.CargoTomlPaths),
		"pyproject_manifests", len(cfg.PyProjectTomlPaths))

	return nil
}

// relativeAll rewrites the absolute discovered paths relative to the
// repository root, keeping the configuration file portable. Paths that
// cannot be made relative are stored as-is.
func relativeAll(root string, paths []string) []string {
	relative := make([]string, 0, len(paths))

	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		relative = append(relative, rel)
	}

	return relative
}
