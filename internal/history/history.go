// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitgate - Commitgate checks the commit subjects of a branch against a fixed set of style rules before it merges.
It is meant to run in CI next to the test suite, or locally from a commit-msg hook.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history lists the commits a branch adds on top of its target branch.
//
// Two sources are provided: [GitSource] shells out to the git CLI and
// [GoGitSource] reads the repository in process with go-git.
package history

import (
	"context"
	"fmt"
	"iter"
	"strings"
)

// Commit is a commit unique to the current branch.
type Commit struct {
	ShortID string `json:"short_id"`
	Subject string `json:"subject"`
}

// Source provides the commits reachable from HEAD but not from the target branch.
//
// The returned sequence is lazy and single use. Implementations refresh the
// target branch from its remote before listing. A non-nil error ends the
// sequence.
type Source interface {
	Commits(ctx context.Context, target string) iter.Seq2[Commit, error]
}

// Source kinds accepted by New.
const (
	KindGit   = "git"
	KindGoGit = "go-git"
)

// Options configures the repository-backed sources.
type Options struct {
	// Dir is any directory inside the repository.
	Dir string
	// Remote is the remote the target branch is fetched from.
	Remote string
	// Fetch refreshes the target branch before listing when true.
	Fetch bool
}

// New returns the Source for kind.
func New(kind string, opts Options) (Source, error) {
	switch kind {
	case KindGit, "":
		return NewGitSource(opts), nil
	case KindGoGit:
		return NewGoGitSource(opts), nil
	default:
		return nil, fmt.Errorf("unknown history source %q (must be %q or %q)", kind, KindGit, KindGoGit)
	}
}

// StaticSource serves a fixed list of commits.
type StaticSource []Commit

func (s StaticSource) Commits(ctx context.Context, _ string) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		for _, c := range s {
			if err := ctx.Err(); err != nil {
				yield(Commit{}, err)
				return
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Commit, error]) ([]Commit, error) {
	var out []Commit
	for c, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, nil
}

// remoteRef is the remote-tracking name of target, e.g. origin/main.
func remoteRef(remote, target string) string {
	if remote == "" {
		return target
	}
	return remote + "/" + target
}

// foldSubject returns the subject of a full commit message the way
// git log's %s does: the first paragraph with line breaks folded to spaces.
func foldSubject(message string) string {
	message = strings.TrimLeft(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	para, _, _ := strings.Cut(message, "\n\n")
	lines := strings.Split(para, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}
