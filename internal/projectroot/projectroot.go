// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the root of the git repository a command runs in.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no repository root exists above the start directory.
var ErrNotFound = errors.New("not inside a git repository")

// Find walks up from start until it finds a directory containing .git
// (a directory, or a file for worktrees and submodules) and returns it.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrNotFound, start)
		}
		dir = parent
	}
}
