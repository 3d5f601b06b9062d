// Package config defines the optional repo-local configuration file
// and provides helpers to load, validate and save it in YAML format.
//
// The file lists the Cargo.toml and pyproject.toml manifests a bump
// should rewrite. When it is absent the manifests are inferred by
// walking the repository instead.
package config
