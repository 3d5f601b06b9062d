package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// versionAssignment matches a version key at the start of a line
// inside a table body.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var versionAssignment = regexp.MustCompile(`^\s*version\s*=`)

// SetCargoVersion rewrites the [package] version of a Cargo manifest
// and reports whether the file changed. A manifest without a [package]
// table (a pure workspace manifest, for example) is left untouched.
func SetCargoVersion(path, version string) (bool, error) {
	return setTableVersion(path, cargoTable, version)
}

// SetPyProjectVersion rewrites the [project] version of a pyproject
// manifest and reports whether the file changed. A manifest without a
// [project] table is left untouched.
func SetPyProjectVersion(path, version string) (bool, error) {
	return setTableVersion(path, pyProjectTable, version)
}

// setTableVersion replaces the version value inside the named
// top-level table, leaving every other byte of the file alone. The
// document is parsed first so malformed TOML is rejected before
// anything is written; the edit itself is textual because a
// decode-and-encode round trip would destroy comments and formatting.
func setTableVersion(path, table, version string) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read manifest: %w", err)
	}

	var document map[string]any
	if err = toml.Unmarshal(contents, &document); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}

	if _, ok := document[table].(map[string]any); !ok {
		return false, nil
	}

	edited := replaceTableVersion(contents, table, version)
	if bytes.Equal(edited, contents) {
		return false, nil
	}

	if err = writeFileAtomic(path, edited); err != nil {
		return false, err
	}

	return true, nil
}

// replaceTableVersion rewrites the version assignment inside the named
// table, or appends one at the end of the table when the key is
// absent.
func replaceTableVersion(contents []byte, table, version string) []byte {
	lines := strings.Split(string(contents), "\n")
	assignment := fmt.Sprintf("version = %q", version)

	inTable := false
	// lastContent tracks the last non-blank line of the table so an
	// inserted key lands before any trailing blank lines.
	lastContent := -1

	for i, line := range lines {
		if isTableHeader(line, table) {
			inTable = true
			lastContent = i

			continue
		}

		if !inTable {
			continue
		}

		if startsSection(line) {
			return insertLine(lines, lastContent+1, assignment)
		}

		if versionAssignment.MatchString(line) {
			lines[i] = assignment

			return []byte(strings.Join(lines, "\n"))
		}

		if strings.TrimSpace(line) != "" {
			lastContent = i
		}
	}

	if inTable {
		return insertLine(lines, lastContent+1, assignment)
	}

	return contents
}

// isTableHeader reports whether the line opens exactly the named
// top-level table, as in "[package]" or "[ package ]".
func isTableHeader(line, table string) bool {
	trimmed := strings.TrimSpace(line)

	rest, ok := strings.CutPrefix(trimmed, "[")
	if !ok {
		return false
	}

	name, _, ok := strings.Cut(rest, "]")
	if !ok {
		return false
	}

	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"'`)

	return name == table
}

// startsSection reports whether the line opens any new TOML table or
// array of tables, which ends the body of the table before it.
func startsSection(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "[")
}

// insertLine returns the lines with s spliced in at index i.
func insertLine(lines []string, i int, s string) []byte {
	spliced := make([]string, 0, len(lines)+1)
	spliced = append(spliced, lines[:i]...)
	spliced = append(spliced, s)
	spliced = append(spliced, lines[i:]...)

	return []byte(strings.Join(spliced, "\n"))
}

// writeFileAtomic replaces path through a temp file and rename so
// readers never observe a partially written manifest. The original
// file mode is preserved.
func writeFileAtomic(path string, contents []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(contents); err != nil {
		tmp.Close()

		return fmt.Errorf("write temp file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()

		return fmt.Errorf("sync temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Chmod(tmpName, info.Mode()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}

	return nil
}
