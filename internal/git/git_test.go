package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMain isolates the tests from user and system git configuration
// so commit, describe and tag behave identically everywhere.
func TestMain(m *testing.M) {
	os.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	os.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)

	os.Exit(m.Run())
}

// requireGit skips the test when the git binary is not installed.
func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
}

// mustGit runs a git command in dir and fails the test on any error.
func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	out, err := exec.Command("git", append([]string{"-C", dir}, args...)...).CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)

	return strings.TrimSpace(string(out))
}

// newTestRepo initializes a throwaway repository on branch main with a
// configured identity and a single commit, returning its root.
func newTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)

	dir := t.TempDir()
	mustGit(t, dir, "init")
	mustGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	mustGit(t, dir, "config", "user.name", "Test User")
	mustGit(t, dir, "config", "user.email", "test@example.com")

	writeTestFile(t, dir, "README.md", "hello\n")
	mustGit(t, dir, "add", "README.md")
	mustGit(t, dir, "commit", "--message", "initial commit")

	return dir
}

// writeTestFile creates a file with the given contents inside dir.
func writeTestFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

// TestDescribeNoTags checks that a repository without
// any tags yields a nil description instead of an error.
func TestDescribeNoTags(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	description, err := repo.Describe(context.Background())
	require.NoError(t, err)
	require.Nil(t, description)
}

// TestDescribeAtTag checks that HEAD sitting
// exactly at a tag produces no offset.
func TestDescribeAtTag(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	mustGit(t, dir, "tag", "--annotate", "v0.1.0", "--message", "v0.1.0")

	repo := NewRepository(dir)

	description, err := repo.Describe(context.Background())
	require.NoError(t, err)
	require.NotNil(t, description)
	require.Equal(t, "v0.1.0", description.Tag)
	require.Equal(t, "v0.1.0", description.Raw)
	require.Nil(t, description.Offset)
}

// TestDescribeWithOffset checks that commits after
// the tag show up as a parsed offset.
func TestDescribeWithOffset(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	mustGit(t, dir, "tag", "--annotate", "v0.1.0", "--message", "v0.1.0")

	writeTestFile(t, dir, "extra.txt", "more\n")
	mustGit(t, dir, "add", "extra.txt")
	mustGit(t, dir, "commit", "--message", "add extra file")

	repo := NewRepository(dir)

	description, err := repo.Describe(context.Background())
	require.NoError(t, err)
	require.NotNil(t, description)
	require.Equal(t, "v0.1.0", description.Tag)
	require.NotNil(t, description.Offset)
	require.Equal(t, 1, description.Offset.Count)
	require.True(t, strings.HasPrefix(description.Offset.Commit, "g"))
}

// TestCurrentBranch checks that the branch name is reported as-is.
func TestCurrentBranch(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	branch, err := repo.CurrentBranch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	mustGit(t, dir, "checkout", "-b", "feature/shiny")

	branch, err = repo.CurrentBranch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "feature/shiny", branch)
}

// TestUpstream checks both the missing-upstream sentinel and a real
// upstream resolved against a local bare remote.
func TestUpstream(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	_, err := repo.Upstream(context.Background(), "main")
	require.ErrorIs(t, err, ErrNoUpstream)

	remote := t.TempDir()
	mustGit(t, remote, "init", "--bare")
	mustGit(t, dir, "remote", "add", "origin", remote)
	mustGit(t, dir, "push", "--set-upstream", "origin", "main")

	upstream, err := repo.Upstream(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, "origin/main", upstream)
}

// TestStatus checks the clean, dirty and ignored status shapes.
func TestStatus(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	status, err := repo.Status(context.Background(), false)
	require.NoError(t, err)
	require.Empty(t, status)

	writeTestFile(t, dir, "untracked.txt", "new\n")

	status, err = repo.Status(context.Background(), false)
	require.NoError(t, err)
	require.Contains(t, status, "?? untracked.txt")

	writeTestFile(t, dir, ".gitignore", "*.log\n")
	writeTestFile(t, dir, "noise.log", "zzz\n")

	status, err = repo.Status(context.Background(), true)
	require.NoError(t, err)
	require.Contains(t, status, "!! noise.log")
}

// TestReadConfig checks that present keys are returned trimmed and
// missing keys surface as ErrConfigUnset.
func TestReadConfig(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	name, err := repo.ReadConfig(context.Background(), "user.name")
	require.NoError(t, err)
	require.Equal(t, "Test User", name)

	_, err = repo.ReadConfig(context.Background(), "bumper.nonexistent")
	require.ErrorIs(t, err, ErrConfigUnset)
}

// TestIsTracked checks index membership before and after staging.
func TestIsTracked(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	tracked, err := repo.IsTracked(context.Background(), filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	require.True(t, tracked)

	path := writeTestFile(t, dir, "new.txt", "new\n")

	tracked, err = repo.IsTracked(context.Background(), path)
	require.NoError(t, err)
	require.False(t, tracked)

	require.NoError(t, repo.Add(context.Background(), path))

	tracked, err = repo.IsTracked(context.Background(), path)
	require.NoError(t, err)
	require.True(t, tracked)
}

// TestCommitAndTag checks the add, commit, annotated tag and describe
// flow end to end.
func TestCommitAndTag(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)
	ctx := context.Background()

	path := writeTestFile(t, dir, "CHANGELOG.md", "notes\n")
	require.NoError(t, repo.Add(ctx, path))
	require.NoError(t, repo.Commit(ctx, "Add changelog"))

	subject := mustGit(t, dir, "log", "-1", "--format=%s")
	require.Equal(t, "Add changelog", subject)

	require.NoError(t, repo.CreateAnnotatedTag(ctx, "v1.0.0"))

	tagType := mustGit(t, dir, "cat-file", "-t", "v1.0.0")
	require.Equal(t, "tag", tagType)

	description, err := repo.Describe(ctx)
	require.NoError(t, err)
	require.NotNil(t, description)
	require.Equal(t, "v1.0.0", description.Tag)
	require.Nil(t, description.Offset)
}

// TestCommitFailure checks that committing nothing produces a
// CommandError carrying the exit code.
func TestCommitFailure(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)

	err := repo.Commit(context.Background(), "empty commit")
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "commit", cmdErr.Command)
	require.NotZero(t, cmdErr.ExitCode)
}

// TestPushAll checks that commits and annotated tags
// arrive at the remote together.
func TestPushAll(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)
	repo := NewRepository(dir)
	ctx := context.Background()

	remote := t.TempDir()
	mustGit(t, remote, "init", "--bare")
	mustGit(t, dir, "remote", "add", "origin", remote)
	mustGit(t, dir, "push", "--set-upstream", "origin", "main")

	path := writeTestFile(t, dir, "feature.txt", "feature\n")
	require.NoError(t, repo.Add(ctx, path))
	require.NoError(t, repo.Commit(ctx, "Add feature"))
	require.NoError(t, repo.CreateAnnotatedTag(ctx, "v0.2.0"))
	require.NoError(t, repo.PushAll(ctx))

	remoteTags := mustGit(t, remote, "tag", "--list")
	require.Contains(t, remoteTags, "v0.2.0")

	remoteSubject := mustGit(t, remote, "log", "-1", "--format=%s", "main")
	require.Equal(t, "Add feature", remoteSubject)
}

// TestLocateRoot checks the upward walk from a nested directory and
// the failure outside any repository.
func TestLocateRoot(t *testing.T) {
	t.Parallel()

	dir := newTestRepo(t)

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	root, err := LocateRoot(nested)
	require.NoError(t, err)
	require.Equal(t, dir, root)

	_, err = LocateRoot(t.TempDir())
	require.ErrorIs(t, err, ErrNoRepository)
}
