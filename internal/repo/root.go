// Package repo locates the root of the git working tree the launcher runs from.
// Relative paths passed to the launcher, such as the labels config, only
// resolve from that root.
package repo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
)

// Root returns the top-level directory of the working tree containing dir.
// Parent directories are searched the same way `git rev-parse --show-toplevel` does.
func Root(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", errs.ErrNotRepository, abs)
		}
		return "", fmt.Errorf("%w: failed to open repository at %s: %w", errs.ErrNotRepository, abs, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		// bare repositories have no working tree to run from
		return "", fmt.Errorf("%w: %s: %w", errs.ErrNotRepository, abs, err)
	}

	return wt.Filesystem.Root(), nil
}

// Resolver adapts Root to the launcher's root lookup
type Resolver struct{}

func (Resolver) Root(dir string) (string, error) {
	return Root(dir)
}
