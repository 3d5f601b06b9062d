package bump

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/oshokin/version-bumper/internal/config"
	domain "github.com/oshokin/version-bumper/internal/domain/version"
	"github.com/oshokin/version-bumper/internal/git"
	"github.com/oshokin/version-bumper/internal/logger"
	"github.com/oshokin/version-bumper/internal/manifest"
)

var (
	errUserNameNotSet  = errors.New("git user name is not set")
	errUserEmailNotSet = errors.New("git e-mail address is not set")
	errWrongBranch     = errors.New(`must be on the "main" or "master" branch`)
	errDirtyWorkingDir = errors.New("git working directory is not clean: " +
		"please revert or commit pending changes and try again")
)

// initialVersion seeds repositories that have never been tagged.
//
//nolint:gochecknoglobals // Constant seed value, never mutated.
var initialVersion = domain.MustParse("v0.0.0")

// Repository is the slice of the git adapter the pipeline consumes.
// *git.Repository implements it; tests substitute a fake.
type Repository interface {
	// Dir returns the repository root.
	Dir() string
	// Describe reports the most recent reachable tag, nil when there is none.
	Describe(ctx context.Context) (*git.Description, error)
	// CurrentBranch reports the branch the working tree is on.
	CurrentBranch(ctx context.Context) (string, error)
	// Upstream resolves the upstream of branch, or git.ErrNoUpstream.
	Upstream(ctx context.Context, branch string) (string, error)
	// Status returns porcelain status, optionally with ignored files.
	Status(ctx context.Context, includeIgnored bool) (string, error)
	// ReadConfig reads one config value, or git.ErrConfigUnset.
	ReadConfig(ctx context.Context, key string) (string, error)
	// IsTracked reports whether path is known to the index.
	IsTracked(ctx context.Context, path string) (bool, error)
	// Add stages path.
	Add(ctx context.Context, path string) error
	// Commit records staged changes.
	Commit(ctx context.Context, message string) error
	// CreateAnnotatedTag tags HEAD with an annotated tag.
	CreateAnnotatedTag(ctx context.Context, tag string) error
	// PushAll pushes commits and the tags pointing at them.
	PushAll(ctx context.Context) error
}

// Options are inputs accepted by the bump-version entry point.
type Options struct {
	// RepoDir is the repository root the bump operates on.
	RepoDir string
	// Version, when non-nil, is used verbatim instead of deriving the
	// next version from the most recent tag.
	Version *domain.Version
	// NoPush skips pushing commits and tags after the tag is created.
	NoPush bool
}

// Run executes the bump pipeline against the real git repository.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bump-version")

	b := &bumper{
		repo:           git.NewRepository(opts.RepoDir),
		regenerateLock: manifest.RegenerateCargoLock,
	}

	return b.run(ctx, opts)
}

// bumper holds the collaborators of a single bump execution.
// It is intentionally unexported; call Run(ctx, opts) from callers.
type bumper struct {
	repo           Repository                          // Git operations, faked in tests.
	regenerateLock func(context.Context, string) error // Lockfile refresh, normally cargo build.
}

// run drives the pipeline: preconditions, version resolution, manifest
// rewrites, commit, tag, push.
func (b *bumper) run(ctx context.Context, opts *Options) error {
	if err := b.checkPreconditions(ctx); err != nil {
		return err
	}

	newVersion, err := b.resolveVersion(ctx, opts.Version)
	if err != nil {
		return err
	}

	info, err := b.projectInfo(ctx)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Resolved next version",
		"version", newVersion.String(),
		"cargo_manifests", len(info.CargoPaths),
		"pyproject_manifests", len(info.PyProjectPaths))

	changed, err := b.updateManifests(ctx, info, newVersion)
	if err != nil {
		return err
	}

	if len(changed) > 0 {
		if err = b.commitManifests(ctx, changed, newVersion); err != nil {
			return err
		}
	}

	tag := newVersion.String()
	if err = b.repo.CreateAnnotatedTag(ctx, tag); err != nil {
		return err
	}

	logger.Infof(ctx, "Created tag %s", tag)

	if opts.NoPush {
		logger.Info(ctx, "Skipping push of commits and tags")

		return nil
	}

	if err = b.repo.PushAll(ctx); err != nil {
		return err
	}

	logger.Info(ctx, "Pushed commits and tags")

	return nil
}

// checkPreconditions runs the fail-fast gates in their fixed order:
// committer identity, release branch, clean tree, configured upstream.
func (b *bumper) checkPreconditions(ctx context.Context) error {
	if _, err := b.repo.ReadConfig(ctx, "user.name"); err != nil {
		if errors.Is(err, git.ErrConfigUnset) {
			return errUserNameNotSet
		}

		return err
	}

	if _, err := b.repo.ReadConfig(ctx, "user.email"); err != nil {
		if errors.Is(err, git.ErrConfigUnset) {
			return errUserEmailNotSet
		}

		return err
	}

	branch, err := b.repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	if branch != "main" && branch != "master" {
		return errWrongBranch
	}

	// Ignored files do not block a release, so they are excluded here.
	status, err := b.repo.Status(ctx, false)
	if err != nil {
		return err
	}

	if status != "" {
		return errDirtyWorkingDir
	}

	if _, err = b.repo.Upstream(ctx, branch); err != nil {
		if errors.Is(err, git.ErrNoUpstream) {
			return fmt.Errorf("branch %q has no upstream set: set with git push -u origin %s or similar",
				branch, branch)
		}

		return err
	}

	return nil
}

// resolveVersion returns the explicit version when one was given and
// otherwise derives the next version from the most recent tag.
func (b *bumper) resolveVersion(ctx context.Context, explicit *domain.Version) (domain.Version, error) {
	if explicit != nil {
		return explicit.Dupe(), nil
	}

	description, err := b.repo.Describe(ctx)
	if err != nil {
		return domain.Version{}, err
	}

	// A repository that has never been tagged starts at the seed version.
	if description == nil {
		return initialVersion.Dupe(), nil
	}

	if description.Offset == nil {
		return domain.Version{}, fmt.Errorf("no commits since most recent tag %q", description.Tag)
	}

	logger.DebugKV(ctx, "Parsed git description",
		"raw", description.Raw,
		"tag", description.Tag,
		"commits_since_tag", description.Offset.Count)

	next, err := domain.Parse(description.Tag)
	if err != nil {
		return domain.Version{}, fmt.Errorf("parse most recent tag: %w", err)
	}

	next.Increment()

	return next, nil
}

// projectInfo loads manifest locations from the repo-local
// configuration file when present and infers them from a repository
// walk otherwise.
func (b *bumper) projectInfo(ctx context.Context) (*manifest.ProjectInfo, error) {
	cfg, err := config.Load(b.repo.Dir())

	switch {
	case err == nil:
		logger.Debugf(ctx, "Using manifest paths from %s", config.Filename)

		return manifest.FromConfig(b.repo.Dir(), cfg), nil
	case errors.Is(err, config.ErrNotFound):
		return manifest.Infer(b.repo.Dir())
	default:
		return nil, err
	}
}

// updateManifests rewrites the version field of every discovered
// manifest using the prefix-less rendering and returns the paths that
// actually changed, regenerated lockfile included.
func (b *bumper) updateManifests(
	ctx context.Context,
	info *manifest.ProjectInfo,
	newVersion domain.Version,
) ([]string, error) {
	if info.IsEmpty() {
		logger.Debug(ctx, "No package manifests found, tagging only")

		return nil, nil
	}

	// Manifest files carry the bare numeric form even when the tag has
	// a "v" prefix.
	fileVersion := newVersion.Dupe()
	fileVersion.SetPrefix(false)
	rendered := fileVersion.String()

	var (
		changed      []string
		cargoChanged bool
	)

	for _, path := range info.CargoPaths {
		modified, err := manifest.SetCargoVersion(path, rendered)
		if err != nil {
			return nil, err
		}

		if modified {
			logger.Infof(ctx, "Set package version %s in %s", rendered, path)

			changed = append(changed, path)
			cargoChanged = true
		}
	}

	for _, path := range info.PyProjectPaths {
		modified, err := manifest.SetPyProjectVersion(path, rendered)
		if err != nil {
			return nil, err
		}

		if modified {
			logger.Infof(ctx, "Set project version %s in %s", rendered, path)

			changed = append(changed, path)
		}
	}

	if cargoChanged {
		lockfile, err := b.refreshLockfile(ctx)
		if err != nil {
			return nil, err
		}

		if lockfile != "" {
			changed = append(changed, lockfile)
		}
	}

	return changed, nil
}

// refreshLockfile regenerates Cargo.lock when both the root manifest
// and the lockfile are tracked by git, returning the lockfile path
// when it was rebuilt.
func (b *bumper) refreshLockfile(ctx context.Context) (string, error) {
	manifestPath := filepath.Join(b.repo.Dir(), manifest.CargoFilename)
	lockPath := filepath.Join(b.repo.Dir(), manifest.CargoLockFilename)

	manifestTracked, err := b.repo.IsTracked(ctx, manifestPath)
	if err != nil {
		return "", err
	}

	lockTracked, err := b.repo.IsTracked(ctx, lockPath)
	if err != nil {
		return "", err
	}

	if !manifestTracked || !lockTracked {
		return "", nil
	}

	logger.Info(ctx, "Regenerating Cargo.lock")

	if err = b.regenerateLock(ctx, manifestPath); err != nil {
		return "", err
	}

	return lockPath, nil
}

// commitManifests stages everything the bump rewrote and records the
// single bump commit.
func (b *bumper) commitManifests(ctx context.Context, changed []string, newVersion domain.Version) error {
	for _, path := range changed {
		if err := b.repo.Add(ctx, path); err != nil {
			return err
		}
	}

	// The commit message carries the bare numeric form, matching the
	// manifest contents rather than the tag name.
	fileVersion := newVersion.Dupe()
	fileVersion.SetPrefix(false)

	message := fmt.Sprintf("Bump version to %s", fileVersion)
	if err := b.repo.Commit(ctx, message); err != nil {
		return err
	}

	logger.Infof(ctx, "Recorded commit %q", message)

	return nil
}
