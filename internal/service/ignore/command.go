// Package ignore implements gen-ignore: it turns the files git reports
// as untracked or ignored into a .gitignore skeleton, printed to
// stdout so it can be piped into a file or inspected first.
package ignore

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oshokin/version-bumper/internal/git"
	"github.com/oshokin/version-bumper/internal/logger"
)

const (
	// untrackedPrefix marks untracked entries in porcelain status output.
	untrackedPrefix = "?? "
	// ignoredPrefix marks ignored entries in porcelain status output.
	ignoredPrefix = "!! "
)

// Options are inputs accepted by the gen-ignore entry point.
type Options struct {
	// RepoDir is the repository root to inspect.
	RepoDir string
	// Out receives the generated listing.
	Out io.Writer
}

// Run prints a .gitignore skeleton built from the current porcelain
// status, ignored files included.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "gen-ignore")

	repo := git.NewRepository(opts.RepoDir)

	status, err := repo.Status(ctx, true)
	if err != nil {
		return err
	}

	if _, err = io.WriteString(opts.Out, Render(status)); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}

	return nil
}

// Render converts porcelain status output into .gitignore content.
// Untracked and ignored entries are split into directories and files,
// sorted, and entries already covered by a listed directory are
// dropped. Every pattern is anchored to the repository root.
func Render(status string) string {
	var dirs, files []string

	for _, line := range strings.Split(status, "\n") {
		path, ok := pathToIgnore(line)
		if !ok {
			continue
		}

		if strings.HasSuffix(path, "/") {
			dirs = append(dirs, path)
		} else {
			files = append(files, path)
		}
	}

	sort.Strings(dirs)
	sort.Strings(files)

	var b strings.Builder

	keptDirs := uncovered(dirs, dirs)
	if len(keptDirs) > 0 {
		b.WriteString("# Directories\n")

		for _, path := range keptDirs {
			b.WriteString("/" + path + "\n")
		}
	}

	keptFiles := uncovered(files, dirs)
	if len(keptFiles) > 0 {
		b.WriteString("# Files\n")

		for _, path := range keptFiles {
			b.WriteString("/" + path + "\n")
		}
	}

	return b.String()
}

// pathToIgnore extracts the path from a porcelain line flagged as
// untracked or ignored; any other flag means the file is already
// known to git and must not be ignored.
func pathToIgnore(line string) (string, bool) {
	if path, ok := strings.CutPrefix(line, untrackedPrefix); ok {
		return path, true
	}

	if path, ok := strings.CutPrefix(line, ignoredPrefix); ok {
		return path, true
	}

	return "", false
}

// uncovered keeps the paths not already inside one of the listed
// directories, so a covered entry never shows up twice.
func uncovered(paths, dirs []string) []string {
	var kept []string

	for _, path := range paths {
		if !coveredByDir(dirs, path) {
			kept = append(kept, path)
		}
	}

	return kept
}

// coveredByDir reports whether path lives under one of the listed
// directories (the directory itself does not cover itself).
func coveredByDir(dirs []string, path string) bool {
	for _, dir := range dirs {
		if path != dir && strings.HasPrefix(path, dir) {
			return true
		}
	}

	return false
}
