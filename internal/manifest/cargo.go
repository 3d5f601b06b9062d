package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// errCargoBuildFailed is returned when cargo itself reports a failure;
// its own output already explains what went wrong.
var errCargoBuildFailed = errors.New("cargo build failed")

// RegenerateCargoLock refreshes Cargo.lock by building the project
// against the given manifest, which is how cargo rewrites the lockfile
// after a version change. Cargo's output streams through to the user
// so build failures are visible in full.
func RegenerateCargoLock(ctx context.Context, manifestPath string) error {
	cmd := exec.CommandContext(ctx, "cargo", "build", "--manifest-path", manifestPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return errCargoBuildFailed
	}

	if err != nil {
		return fmt.Errorf("run cargo build: %w", err)
	}

	return nil
}
