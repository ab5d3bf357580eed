// Package git materializes external repositories by invoking the git tool.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diaclass"
)

// Ensure Materializer implements diaclass.Materializer at compile time.
var _ diaclass.Materializer = (*Materializer)(nil)

// Runner runs an external command in dir. An empty dir means the current
// working directory.
type Runner func(ctx context.Context, dir, name string, args ...string) error

// ExecRunner runs commands with os/exec. Interactive credential prompts are
// disabled so an unreachable private repository fails instead of blocking.
func ExecRunner(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return nil
}

// Materializer keeps one working copy per repository under a target directory.
type Materializer struct {
	dir string
	run Runner
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithRunner sets the command runner. Defaults to ExecRunner.
func WithRunner(run Runner) Option {
	return func(m *Materializer) {
		m.run = run
	}
}

// NewMaterializer creates a Materializer that stores repositories in dir.
func NewMaterializer(dir string, opts ...Option) *Materializer {
	m := &Materializer{
		dir: dir,
		run: ExecRunner,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize clones each repository that has no working copy yet and pulls
// the ones that do. Every repository gets a status; failures never stop the
// remaining repositories from being processed.
func (m *Materializer) Materialize(ctx context.Context, repos []*diaclass.Repository) []*diaclass.RepositoryStatus {
	statuses := make([]*diaclass.RepositoryStatus, 0, len(repos))

	mkdirErr := os.MkdirAll(m.dir, 0755)

	for _, repo := range repos {
		status := &diaclass.RepositoryStatus{
			Name:   repo.Name,
			Action: diaclass.RepositorySkipped,
		}
		statuses = append(statuses, status)

		if err := validateName(repo); err != nil {
			status.Err = err
			continue
		}
		status.Dir = filepath.Join(m.dir, repo.Name)

		if mkdirErr != nil {
			status.Err = diaclass.Errorf(diaclass.EUNAVAILABLE, "cannot create %s: %v", m.dir, mkdirErr)
			continue
		}
		if err := ctx.Err(); err != nil {
			status.Err = err
			continue
		}

		if exists(status.Dir) {
			status.Action = diaclass.RepositoryUpdated
			if err := m.run(ctx, "", "git", "-C", status.Dir, "pull"); err != nil {
				status.Err = diaclass.Errorf(diaclass.EUNAVAILABLE, "error updating %s: %v", repo.Name, err)
			}
			continue
		}

		status.Action = diaclass.RepositoryCloned
		if err := m.run(ctx, "", "git", "clone", repo.CloneURL(), status.Dir); err != nil {
			status.Err = diaclass.Errorf(diaclass.EUNAVAILABLE, "error cloning %s: %v", repo.Name, err)
		}
	}

	return statuses
}

// validateName rejects repository names that would escape the target
// directory or nest inside another repository.
func validateName(repo *diaclass.Repository) error {
	if err := repo.Validate(); err != nil {
		return err
	}
	name := repo.Name
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return diaclass.Errorf(diaclass.EINVALID, "invalid repository name %q", name)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
