package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoRepository is returned by LocateRoot when no enclosing
// directory contains a .git directory.
var ErrNoRepository = errors.New("cannot infer Git project directory")

// LocateRoot walks up from startDir and returns the first directory
// that contains a .git directory, which is the repository root.
func LocateRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for {
		info, err := os.Stat(filepath.Join(dir, ".git"))
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoRepository
		}

		dir = parent
	}
}
