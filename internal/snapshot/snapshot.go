// Package snapshot version-controls the exported data file so review
// history is never lost to a bad write.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "spaced"
	authorEmail = "spaced@localhost"
)

// Result reports what a snapshot did.
type Result struct {
	Committed bool
	Hash      string
	Pushed    bool
	PushErr   error // non-nil when a push was attempted and failed
}

// Commit stages file (a path relative to dir) in the git repository at dir
// and commits it when it changed. A missing repository is initialized. If
// an "origin" remote exists the commit is pushed best-effort: a push
// failure lands in Result.PushErr, never in the returned error, because a
// locally committed backup is still a good backup.
func Commit(dir, file, message string, now time.Time) (Result, error) {
	repo, err := git.PlainOpen(dir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(dir, false)
	}
	if err != nil {
		return Result{}, fmt.Errorf("snapshot: cannot open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Result{}, fmt.Errorf("snapshot: %w", err)
	}

	if _, err := wt.Add(file); err != nil {
		return Result{}, fmt.Errorf("snapshot: cannot stage %s: %w", file, err)
	}

	status, err := wt.Status()
	if err != nil {
		return Result{}, fmt.Errorf("snapshot: %w", err)
	}
	if status.IsClean() {
		return Result{}, nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: now},
	})
	if err != nil {
		return Result{}, fmt.Errorf("snapshot: commit failed: %w", err)
	}
	res := Result{Committed: true, Hash: hash.String()}

	if _, err := repo.Remote("origin"); err == nil {
		pushErr := repo.Push(&git.PushOptions{})
		if pushErr != nil && !errors.Is(pushErr, git.NoErrAlreadyUpToDate) {
			res.PushErr = pushErr
		} else {
			res.Pushed = pushErr == nil
		}
	}
	return res, nil
}
