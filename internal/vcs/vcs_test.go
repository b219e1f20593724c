package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ProjectSettings.asset"), []byte("x"), 0o600))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("ProjectSettings.asset")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Unix(1700000000, 0)},
	})
	require.NoError(t, err)
	return dir, repo, hash
}

func TestResolveVersion_CommitHash(t *testing.T) {
	dir, _, hash := initRepo(t)
	sub := filepath.Join(dir, "Assets")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	v, err := ResolveVersion(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String()[:12], v)
}

func TestResolveVersion_LightweightTag(t *testing.T) {
	dir, repo, hash := initRepo(t)
	_, err := repo.CreateTag("v1.4.0", hash, nil)
	require.NoError(t, err)

	v, err := ResolveVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", v)
}

func TestResolveVersion_AnnotatedTag(t *testing.T) {
	dir, repo, hash := initRepo(t)
	_, err := repo.CreateTag("release-7", hash, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Unix(1700000100, 0)},
		Message: "release 7",
	})
	require.NoError(t, err)

	v, err := ResolveVersion(dir)
	require.NoError(t, err)
	assert.Equal(t, "release-7", v)
}

func TestResolveVersion_NotARepository(t *testing.T) {
	_, err := ResolveVersion(t.TempDir())
	require.Error(t, err)
}
