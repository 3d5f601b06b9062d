// Package show implements show-description: a read-only view of what
// git describe reports and the version a bump would produce next.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	domain "github.com/oshokin/version-bumper/internal/domain/version"
	"github.com/oshokin/version-bumper/internal/git"
	"github.com/oshokin/version-bumper/internal/logger"
)

// errNoDescription is returned when the repository has no tags to describe.
var errNoDescription = errors.New("repository has no tags to describe")

// Options are inputs accepted by the show-description entry point.
type Options struct {
	// RepoDir is the repository root to inspect.
	RepoDir string
	// Out receives the report.
	Out io.Writer
}

// Run prints the current git description and the version
// a bump would derive from it. Nothing is modified.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "show-description")

	repo := git.NewRepository(opts.RepoDir)

	description, err := repo.Describe(ctx)
	if err != nil {
		return err
	}

	if description == nil {
		return errNoDescription
	}

	next, err := domain.Parse(description.Tag)
	if err != nil {
		return fmt.Errorf("parse most recent tag: %w", err)
	}

	next.Increment()

	if _, err = io.WriteString(opts.Out, Render(description, next)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// Render lays out the description fields and the derived next version
// as an aligned, line-per-field report.
func Render(description *git.Description, next domain.Version) string {
	var b strings.Builder

	fmt.Fprintf(&b, "description:  %s\n", description.Raw)
	fmt.Fprintf(&b, "tag:          %s\n", description.Tag)

	if description.Offset != nil {
		fmt.Fprintf(&b, "offset:       %d commit(s) since tag, at %s\n",
			description.Offset.Count, description.Offset.Commit)
	} else {
		fmt.Fprintf(&b, "offset:       exactly at tag\n")
	}

	fmt.Fprintf(&b, "next version: %s\n", next)

	return b.String()
}
