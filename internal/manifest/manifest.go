package manifest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/oshokin/version-bumper/internal/config"
)

const (
	// CargoFilename is the manifest name of the Rust ecosystem.
	CargoFilename = "Cargo.toml"
	// CargoLockFilename is the lockfile that accompanies Cargo.toml.
	CargoLockFilename = "Cargo.lock"
	// PyProjectFilename is the manifest name of the Python ecosystem.
	PyProjectFilename = "pyproject.toml"

	// cargoTable and pyProjectTable are the top-level TOML tables
	// carrying the version field of each manifest kind.
	cargoTable     = "package"
	pyProjectTable = "project"
)

// skippedDirNames are directory names never descended into during
// inference: VCS metadata and cargo build output.
//
//nolint:gochecknoglobals // Shared lookup table, never mutated.
var skippedDirNames = map[string]struct{}{
	".git":   {},
	"target": {},
}

// ProjectInfo lists the manifests a bump rewrites, partitioned by
// kind. Paths are absolute and sorted.
type ProjectInfo struct {
	// CargoPaths are the discovered Cargo.toml manifests.
	CargoPaths []string
	// PyProjectPaths are the discovered pyproject.toml manifests.
	PyProjectPaths []string
}

// IsEmpty reports whether no manifests were found at all.
func (p *ProjectInfo) IsEmpty() bool {
	return len(p.CargoPaths) == 0 && len(p.PyProjectPaths) == 0
}

// Infer walks the repository from root and collects every Cargo.toml
// and pyproject.toml, skipping VCS metadata and build output
// directories.
func Infer(root string) (*ProjectInfo, error) {
	info := new(ProjectInfo)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if _, skip := skippedDirNames[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}

			return nil
		}

		switch entry.Name() {
		case CargoFilename:
			info.CargoPaths = append(info.CargoPaths, path)
		case PyProjectFilename:
			info.PyProjectPaths = append(info.PyProjectPaths, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(info.CargoPaths)
	sort.Strings(info.PyProjectPaths)

	return info, nil
}

// FromConfig resolves the manifest paths listed in the configuration
// against the repository root.
func FromConfig(root string, cfg *config.Config) *ProjectInfo {
	return &ProjectInfo{
		CargoPaths:     resolveAll(root, cfg.CargoTomlPaths),
		PyProjectPaths: resolveAll(root, cfg.PyProjectTomlPaths),
	}
}

// resolveAll turns the listed paths into absolute, sorted ones,
// leaving already absolute entries alone.
func resolveAll(root string, paths []string) []string {
	resolved := make([]string, 0, len(paths))

	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		resolved = append(resolved, filepath.Clean(path))
	}

	sort.Strings(resolved)

	return resolved
}
