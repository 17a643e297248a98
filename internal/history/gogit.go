// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// shortIDLen matches git's default abbreviation length.
const shortIDLen = 7

type empty struct{}

// GoGitSource lists commits by reading the repository with go-git,
// without a git binary on PATH.
type GoGitSource struct {
	dir    string
	remote string
	fetch  bool
}

// NewGoGitSource creates a GoGitSource for the repository containing opts.Dir.
func NewGoGitSource(opts Options) *GoGitSource {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return &GoGitSource{
		dir:    dir,
		remote: opts.Remote,
		fetch:  opts.Fetch,
	}
}

// Commits fetches target, collects every commit reachable from it, and then
// walks HEAD yielding the commits outside that set.
func (s *GoGitSource) Commits(ctx context.Context, target string) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		repo, err := git.PlainOpenWithOptions(s.dir, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			yield(Commit{}, fmt.Errorf("opening repository at %s: %w", s.dir, err))
			return
		}

		if s.fetch && s.remote != "" {
			if err := s.fetchTarget(ctx, repo, target); err != nil {
				yield(Commit{}, err)
				return
			}
		}

		targetRef, err := repo.Reference(s.targetRefName(target), true)
		if err != nil {
			yield(Commit{}, fmt.Errorf("resolving %s: %w", remoteRef(s.remote, target), err))
			return
		}
		head, err := repo.Head()
		if err != nil {
			yield(Commit{}, fmt.Errorf("resolving HEAD: %w", err))
			return
		}

		onTarget, err := ancestors(ctx, repo, targetRef.Hash())
		if err != nil {
			yield(Commit{}, err)
			return
		}

		commits, err := repo.Log(&git.LogOptions{From: head.Hash()})
		if err != nil {
			yield(Commit{}, fmt.Errorf("walking HEAD: %w", err))
			return
		}
		defer commits.Close()

		stopped := false
		err = commits.ForEach(func(c *object.Commit) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, seen := onTarget[c.Hash]; seen {
				return nil
			}
			if !yield(toCommit(c), nil) {
				stopped = true
				return storer.ErrStop
			}
			return nil
		})
		if err != nil && !stopped {
			yield(Commit{}, fmt.Errorf("walking HEAD: %w", err))
		}
	}
}

func (s *GoGitSource) targetRefName(target string) plumbing.ReferenceName {
	if s.remote == "" {
		return plumbing.NewBranchReferenceName(target)
	}
	return plumbing.NewRemoteReferenceName(s.remote, target)
}

func (s *GoGitSource) fetchTarget(ctx context.Context, repo *git.Repository, target string) error {
	spec := gitconfig.RefSpec(fmt.Sprintf("+%s:%s", plumbing.NewBranchReferenceName(target), s.targetRefName(target)))
	slog.Debug("fetching with go-git", "remote", s.remote, "refspec", spec)

	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: s.remote,
		RefSpecs:   []gitconfig.RefSpec{spec},
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		slog.Debug("target already up to date", "target", target)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching %s from %s: %w", target, s.remote, err)
	}
	return nil
}

// ancestors returns every commit reachable from from, including itself.
func ancestors(ctx context.Context, repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]empty, error) {
	walk, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("walking target history: %w", err)
	}
	defer walk.Close()

	seen := make(map[plumbing.Hash]empty)
	err = walk.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = empty{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking target history: %w", err)
	}
	return seen, nil
}

func toCommit(c *object.Commit) Commit {
	id := c.Hash.String()
	if len(id) > shortIDLen {
		id = id[:shortIDLen]
	}
	return Commit{ShortID: id, Subject: foldSubject(c.Message)}
}
