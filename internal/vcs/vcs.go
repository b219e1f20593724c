// Package vcs derives build versions from the project's git checkout.
package vcs

import (
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
)

// shortHashLen is the length of the abbreviated commit hash used as a version.
const shortHashLen = 12

// ResolveVersion returns a build version for the repository containing dir: the
// name of a tag pointing at HEAD if there is one, otherwise the abbreviated
// HEAD commit hash.
func ResolveVersion(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "build_version auto requires a git repository").
			WithContext("path", dir).
			Build()
	}
	head, err := repo.Head()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "resolve git HEAD").
			WithContext("path", dir).
			Build()
	}

	if tag, ok := tagAt(repo, head.Hash()); ok {
		slog.Debug("Build version from git tag", logfields.Path(dir), slog.String("tag", tag))
		return tag, nil
	}
	return head.Hash().String()[:shortHashLen], nil
}

func tagAt(repo *git.Repository, hash plumbing.Hash) (string, bool) {
	iter, err := repo.Tags()
	if err != nil {
		return "", false
	}
	defer iter.Close()

	var found string
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		// Annotated tags point at a tag object, not the commit.
		if tagObj, err := repo.TagObject(target); err == nil {
			commit, err := tagObj.Commit()
			if err != nil {
				return nil
			}
			target = commit.Hash
		}
		if target == hash {
			found = ref.Name().Short()
			return storer.ErrStop
		}
		return nil
	})
	return found, found != ""
}
