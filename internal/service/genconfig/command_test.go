package genconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/version-bumper/internal/config"
)

// writeFile creates a placeholder file under root, with directories.
func writeFile(t *testing.T, root, rel string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# placeholder\n"), 0o644))
}

// TestRunWritesDiscoveredManifests checks that the generated file
// lists every discovered manifest relative to the repository root.
func TestRunWritesDiscoveredManifests(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Cargo.toml")
	writeFile(t, root, "tools/helper/Cargo.toml")
	writeFile(t, root, "bindings/pyproject.toml")
	writeFile(t, root, "target/Cargo.toml")

	require.NoError(t, Run(context.Background(), &Options{RepoDir: root}))

	cfg, err := config.Load(root)
	require.NoError(t, err)

	require.Equal(t, []string{
		"Cargo.toml",
		filepath.Join("tools", "helper", "Cargo.toml"),
	}, cfg.CargoTomlPaths)

	require.Equal(t, []string{
		filepath.Join("bindings", "pyproject.toml"),
	}, cfg.PyProjectTomlPaths)
}

// TestRunRefusesToOverwrite checks that an existing configuration file
// survives a run without the force flag.
func TestRunRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Cargo.toml")

	require.NoError(t, Run(context.Background(), &Options{RepoDir: root}))

	// A second run without force fails and keeps the file.
	err := Run(context.Background(), &Options{RepoDir: root})
	require.ErrorIs(t, err, config.ErrAlreadyExists)

	// With force it succeeds and picks up new manifests.
	writeFile(t, root, "extra/Cargo.toml")
	require.NoError(t, Run(context.Background(), &Options{
		RepoDir: root,
		Force:   true,
	}))

	cfg, err := config.Load(root)
	require.NoError(t, err)
	require.Len(t, cfg.CargoTomlPaths, 2)
}

// TestRunEmptyRepository checks that a repository without manifests
// produces a valid, empty configuration.
func TestRunEmptyRepository(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	require.NoError(t, Run(context.Background(), &Options{RepoDir: root}))

	cfg, err := config.Load(root)
	require.NoError(t, err)
	require.Empty(t, cfg.CargoTomlPaths)
	require.Empty(t, cfg.PyProjectTomlPaths)
}
