package catalogrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devcat-io/devcat/internal/testutil"
)

func TestParseTagRefs(t *testing.T) {
	output := "a1b2c3\trefs/tags/1.0.0\n" +
		"d4e5f6\trefs/tags/1.1.0\n" +
		"\n" +
		"ffffff\trefs/heads/main\n" +
		"garbage line with many fields\n" +
		"abcdef\trefs/tags/release/2.0.0\n"

	assert.Equal(t, []string{"1.0.0", "1.1.0", "release/2.0.0"}, parseTagRefs(output))
	assert.Empty(t, parseTagRefs(""))
}

func TestGitError_IncludesStderr(t *testing.T) {
	err := &GitError{Args: []string{"ls-remote", "x"}, Stderr: "fatal: repository not found", Err: os.ErrNotExist}
	assert.Contains(t, err.Error(), "git ls-remote x")
	assert.Contains(t, err.Error(), "repository not found")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGitCLI_ListTagsAndClone(t *testing.T) {
	testutil.RequireGit(t)
	logger := testutil.NewTestLogger()

	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "marker.txt"), []byte("v1"), 0o644))
	url := testutil.InitGitRepo(t, repo, "1.0.0")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "marker.txt"), []byte("v2"), 0o644))
	testutil.CommitAll(t, repo, "second", "1.1.0")

	g := NewGitCLI(logger)

	tags, err := g.ListTags(context.Background(), url)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1.0.0", "1.1.0"}, tags)

	dest := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, g.Clone(context.Background(), url, "1.0.0", dest))
	content, err := os.ReadFile(filepath.Join(dest, "marker.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))
}

func TestGitCLI_CloneFailure(t *testing.T) {
	testutil.RequireGit(t)
	g := NewGitCLI(testutil.NewTestLogger())

	missing := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "missing"))
	err := g.Clone(context.Background(), missing, "", filepath.Join(t.TempDir(), "dest"))
	require.Error(t, err)

	var gitErr *GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "clone", gitErr.Args[0])
}
