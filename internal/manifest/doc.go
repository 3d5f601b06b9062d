// Package manifest discovers package manifests in a repository and
// rewrites their version field in place.
//
// Two manifest kinds are recognized: Cargo.toml, whose version lives
// in the [package] table, and pyproject.toml, whose version lives in
// the [project] table. Rewrites keep every other byte of the file
// intact and are applied atomically through a temp file and rename, so
// a crash never leaves a half-written manifest behind.
package manifest
