// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// logFormat puts the abbreviated hash and the subject on one line.
// The hash never contains a space, so the first space separates the two.
const logFormat = "--format=%h %s"

// GitSource lists commits by running the git CLI.
type GitSource struct {
	dir    string
	remote string
	fetch  bool
}

// NewGitSource creates a GitSource for the repository containing opts.Dir.
func NewGitSource(opts Options) *GitSource {
	return &GitSource{
		dir:    opts.Dir,
		remote: opts.Remote,
		fetch:  opts.Fetch,
	}
}

// Commits runs `git fetch <remote> <target>` and then streams
// `git log <remote>/<target>..HEAD`. Breaking out of the loop early kills
// the git process.
func (s *GitSource) Commits(ctx context.Context, target string) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		if s.fetch && s.remote != "" {
			if err := s.run(ctx, "fetch", s.remote, target); err != nil {
				yield(Commit{}, fmt.Errorf("fetching %s from %s: %w", target, s.remote, err))
				return
			}
		}

		rng := remoteRef(s.remote, target) + "..HEAD"
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		args := gitArgs(s.dir, []string{"log", logFormat, rng})
		slog.Debug("running git", "args", args)
		cmd := exec.CommandContext(ctx, "git", args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			yield(Commit{}, fmt.Errorf("git log pipe: %w", err))
			return
		}
		if err := cmd.Start(); err != nil {
			yield(Commit{}, fmt.Errorf("starting git log: %w", err))
			return
		}

		sc := bufio.NewScanner(stdout)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			if !utf8.ValidString(line) {
				cancel()
				_ = cmd.Wait()
				yield(Commit{}, fmt.Errorf("git log %s: output is not valid UTF-8: %q", rng, line))
				return
			}
			if !yield(parseLogLine(line), nil) {
				cancel()
				_ = cmd.Wait()
				return
			}
		}
		scanErr := sc.Err()

		if err := cmd.Wait(); err != nil {
			yield(Commit{}, fmt.Errorf("git log %s failed: %w: %s", rng, err, strings.TrimSpace(stderr.String())))
			return
		}
		if scanErr != nil {
			yield(Commit{}, fmt.Errorf("reading git log output: %w", scanErr))
		}
	}
}

// run executes a git command, folding its output into the error on failure.
func (s *GitSource) run(ctx context.Context, args ...string) error {
	args = gitArgs(s.dir, args)
	slog.Debug("running git", "args", args)
	out, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// parseLogLine splits a "<short id> <subject>" line. A commit with an empty
// message yields an empty subject.
func parseLogLine(line string) Commit {
	id, subject, _ := strings.Cut(line, " ")
	return Commit{ShortID: id, Subject: subject}
}
