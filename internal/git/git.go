package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/oshokin/version-bumper/internal/logger"
)

// gitFatalExitCode is the exit code git uses for fatal errors; several
// of them are expected outcomes decoded from stderr below.
const gitFatalExitCode = 128

var (
	// ErrNoUpstream is returned by Upstream when the branch has no
	// upstream configured.
	ErrNoUpstream = errors.New("branch has no upstream")

	// ErrConfigUnset is returned by ReadConfig when the requested key
	// has no value.
	ErrConfigUnset = errors.New("config value is not set")

	// ErrIdentityUnset is returned by Commit when git refuses to
	// commit because user.name or user.email is missing.
	ErrIdentityUnset = errors.New("committer identity is not configured")
)

// CommandError reports a git invocation that exited unsuccessfully in
// a way none of the documented special cases covers.
type CommandError struct {
	// Command is the git subcommand that failed, such as "describe".
	Command string
	// ExitCode is the process exit code,
	// or -1 when the process terminated without one.
	ExitCode int
	// Stderr is the trimmed standard error output.
	Stderr string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
	}

	return fmt.Sprintf("git %s failed with exit code %d", e.Command, e.ExitCode)
}

// Repository runs git commands against a single repository directory.
type Repository struct {
	dir string
}

// NewRepository returns a Repository rooted at dir.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir returns the repository root this instance operates on.
func (r *Repository) Dir() string {
	return r.dir
}

// commandResult captures one finished git invocation. Stdout and
// stderr are trimmed; exitCode is -1 when the process died without
// reporting one.
type commandResult struct {
	command   string
	succeeded bool
	exitCode  int
	stdout    string
	stderr    string
}

// ok converts an unsuccessful result into a *CommandError.
func (c *commandResult) ok() error {
	if c.succeeded {
		return nil
	}

	return &CommandError{
		Command:  c.command,
		ExitCode: c.exitCode,
		Stderr:   c.stderr,
	}
}

// run executes one git subcommand and captures its outcome. A non-zero
// exit is not an error at this level because several callers decode
// specific exit codes; only a failure to run the process at all is.
func (r *Repository) run(ctx context.Context, command string, args ...string) (*commandResult, error) {
	fullArgs := append([]string{"-C", r.dir, command}, args...)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	// Pin the locale so the stderr phrases decoded by callers are not
	// replaced with translations.
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run git %s: %w", command, err)
		}
	}

	result := &commandResult{
		command:   command,
		succeeded: cmd.ProcessState.Success(),
		exitCode:  cmd.ProcessState.ExitCode(),
		stdout:    strings.TrimSpace(stdout.String()),
		stderr:    strings.TrimSpace(stderr.String()),
	}

	logger.DebugKV(ctx, "Ran git command",
		"command", "git "+strings.Join(fullArgs, " "),
		"exit_code", result.exitCode,
		"stdout", result.stdout,
		"stderr", result.stderr)

	return result, nil
}

// Describe asks git for the most recent reachable tag. It returns nil
// when the repository has no tags at all (git exits 128 complaining it
// cannot describe anything) and when the printed descriptor does not
// follow the TAG or TAG-COUNT-COMMIT grammar.
func (r *Repository) Describe(ctx context.Context) (*Description, error) {
	result, err := r.run(ctx, "describe")
	if err != nil {
		return nil, err
	}

	if result.exitCode == gitFatalExitCode &&
		strings.Contains(result.stderr, "cannot describe anything") {
		return nil, nil
	}

	if err = result.ok(); err != nil {
		return nil, err
	}

	return ParseDescription(result.stdout), nil
}

// CurrentBranch reports the branch the working tree is on.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	result, err := r.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}

	if err = result.ok(); err != nil {
		return "", err
	}

	return result.stdout, nil
}

// Upstream resolves the upstream of the given branch,
// or ErrNoUpstream when none is configured.
func (r *Repository) Upstream(ctx context.Context, branch string) (string, error) {
	result, err := r.run(ctx, "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	if err != nil {
		return "", err
	}

	if result.exitCode == gitFatalExitCode &&
		strings.Contains(result.stderr, "no upstream") {
		return "", ErrNoUpstream
	}

	if err = result.ok(); err != nil {
		return "", err
	}

	return result.stdout, nil
}

// Status returns the porcelain status of the working tree, optionally
// including ignored files. An empty string means the tree is clean.
func (r *Repository) Status(ctx context.Context, includeIgnored bool) (string, error) {
	args := []string{"--porcelain"}
	if includeIgnored {
		args = append(args, "--ignored")
	}

	result, err := r.run(ctx, "status", args...)
	if err != nil {
		return "", err
	}

	if err = result.ok(); err != nil {
		return "", err
	}

	return result.stdout, nil
}

// ReadConfig reads a single git config value,
// or ErrConfigUnset when the key has no value.
func (r *Repository) ReadConfig(ctx context.Context, key string) (string, error) {
	result, err := r.run(ctx, "config", key)
	if err != nil {
		return "", err
	}

	if result.exitCode == 1 && result.stdout == "" {
		return "", ErrConfigUnset
	}

	if err = result.ok(); err != nil {
		return "", err
	}

	return result.stdout, nil
}

// IsTracked reports whether the given path is known to the index.
func (r *Repository) IsTracked(ctx context.Context, path string) (bool, error) {
	result, err := r.run(ctx, "ls-files", path)
	if err != nil {
		return false, err
	}

	if err = result.ok(); err != nil {
		return false, err
	}

	return result.stdout != "", nil
}

// Add stages the given path.
func (r *Repository) Add(ctx context.Context, path string) error {
	result, err := r.run(ctx, "add", path)
	if err != nil {
		return err
	}

	return result.ok()
}

// Commit records the staged changes with the given message. A refusal
// because the committer identity is missing surfaces as
// ErrIdentityUnset.
func (r *Repository) Commit(ctx context.Context, message string) error {
	result, err := r.run(ctx, "commit", "--message", message)
	if err != nil {
		return err
	}

	if result.exitCode == gitFatalExitCode &&
		strings.Contains(result.stderr, "tell me who you are") {
		return ErrIdentityUnset
	}

	return result.ok()
}

// CreateAnnotatedTag creates an annotated tag
// whose message is the tag name itself.
func (r *Repository) CreateAnnotatedTag(ctx context.Context, tag string) error {
	result, err := r.run(ctx, "tag", "--annotate", tag, "--message", tag)
	if err != nil {
		return err
	}

	return result.ok()
}

// PushAll pushes commits together with
// any annotated tags that point at them.
func (r *Repository) PushAll(ctx context.Context) error {
	result, err := r.run(ctx, "push", "--follow-tags")
	if err != nil {
		return err
	}

	return result.ok()
}
