package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config lists the package manifests rewritten during a version bump.
// Paths are relative to the repository root; absolute paths are kept
// as-is.
type Config struct {
	// CargoTomlPaths are the Cargo.toml manifests whose package
	// version is kept in sync with the tag.
	CargoTomlPaths []string `yaml:"cargo_toml_paths"`
	// PyProjectTomlPaths are the pyproject.toml manifests whose
	// project version is kept in sync with the tag.
	PyProjectTomlPaths []string `yaml:"pyproject_toml_paths"`
}

const (
	// Filename is the name of the configuration file
	// at the root of the repository.
	Filename = ".version-bumper.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o644
)

var (
	// ErrNotFound is returned by Load when the repository has no
	// configuration file, so callers can fall back to inference.
	ErrNotFound = errors.New("configuration file not found")

	// ErrAlreadyExists is returned by Save when the configuration file
	// is already present and overwriting was not requested.
	ErrAlreadyExists = errors.New("configuration file already exists")

	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errEmptyPathEntry is returned when a manifest list contains a blank entry.
	errEmptyPathEntry = errors.New("manifest path entries must not be empty")
)

// Path returns the location of the configuration file
// inside the given repository root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, Filename)
}

// Load reads the configuration from the repository root. A missing
// file is reported as ErrNotFound; any other read or parse failure is
// an error in its own right.
func Load(repoRoot string) (*Config, error) {
	contents, err := os.ReadFile(Path(repoRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read configuration: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration into the repository root. An existing
// file is replaced only when overwrite is set.
func Save(repoRoot string, cfg *Config, overwrite bool) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	path := Path(repoRoot)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s", ErrAlreadyExists, path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}

	return nil
}

// Validate checks the manifest lists for blank entries, which would
// otherwise silently resolve to the repository root itself.
func Validate(cfg *Config) error {
	for _, path := range cfg.CargoTomlPaths {
		if strings.TrimSpace(path) == "" {
			return errEmptyPathEntry
		}
	}

	for _, path := range cfg.PyProjectTomlPaths {
		if strings.TrimSpace(path) == "" {
			return errEmptyPathEntry
		}
	}

	return nil
}
