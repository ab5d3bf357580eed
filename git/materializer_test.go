package git_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/diaclass"
	"github.com/fwojciec/diaclass/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGit records commands and simulates clone by creating the destination.
type fakeGit struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeGit) run(ctx context.Context, dir, name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)

	for prefix, err := range f.fail {
		if strings.Contains(call, prefix) {
			return err
		}
	}
	if len(args) == 3 && args[0] == "clone" {
		return os.MkdirAll(args[2], 0755)
	}
	return nil
}

func TestMaterializer_Materialize(t *testing.T) {
	t.Parallel()

	t.Run("clones missing repositories with query stripped", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "tmp")
		fake := &fakeGit{}
		m := git.NewMaterializer(dir, git.WithRunner(fake.run))

		statuses := m.Materialize(context.Background(), []*diaclass.Repository{
			{Name: "api", ImportURL: "https://github.com/acme/api?branch=main"},
		})

		require.Len(t, statuses, 1)
		assert.Equal(t, diaclass.RepositoryCloned, statuses[0].Action)
		assert.NoError(t, statuses[0].Err)
		assert.Equal(t, filepath.Join(dir, "api"), statuses[0].Dir)
		assert.Equal(t, []string{"git clone https://github.com/acme/api " + filepath.Join(dir, "api")}, fake.calls)
	})

	t.Run("pulls existing repositories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "api"), 0755))
		fake := &fakeGit{}
		m := git.NewMaterializer(dir, git.WithRunner(fake.run))

		statuses := m.Materialize(context.Background(), []*diaclass.Repository{
			{Name: "api", ImportURL: "https://github.com/acme/api"},
		})

		require.Len(t, statuses, 1)
		assert.Equal(t, diaclass.RepositoryUpdated, statuses[0].Action)
		assert.Equal(t, []string{"git -C " + filepath.Join(dir, "api") + " pull"}, fake.calls)
	})

	t.Run("continues after a failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fake := &fakeGit{fail: map[string]error{"acme/broken": errors.New("repository not found")}}
		m := git.NewMaterializer(dir, git.WithRunner(fake.run))

		statuses := m.Materialize(context.Background(), []*diaclass.Repository{
			{Name: "broken", ImportURL: "https://github.com/acme/broken"},
			{Name: "ok", ImportURL: "https://github.com/acme/ok"},
		})

		require.Len(t, statuses, 2)
		require.Error(t, statuses[0].Err)
		assert.Equal(t, diaclass.EUNAVAILABLE, diaclass.ErrorCode(statuses[0].Err))
		assert.Contains(t, diaclass.ErrorMessage(statuses[0].Err), "error cloning broken")
		assert.NoError(t, statuses[1].Err)
		assert.Len(t, fake.calls, 2)
	})

	t.Run("is idempotent across runs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fake := &fakeGit{}
		m := git.NewMaterializer(dir, git.WithRunner(fake.run))
		repos := []*diaclass.Repository{{Name: "api", ImportURL: "https://github.com/acme/api"}}

		first := m.Materialize(context.Background(), repos)
		second := m.Materialize(context.Background(), repos)
		third := m.Materialize(context.Background(), repos)

		assert.Equal(t, diaclass.RepositoryCloned, first[0].Action)
		assert.Equal(t, second, third)
		assert.NoError(t, second[0].Err)
		assert.DirExists(t, filepath.Join(dir, "api"))
	})

	t.Run("rejects names escaping the target directory", func(t *testing.T) {
		t.Parallel()

		fake := &fakeGit{}
		m := git.NewMaterializer(t.TempDir(), git.WithRunner(fake.run))

		statuses := m.Materialize(context.Background(), []*diaclass.Repository{
			{Name: "..", ImportURL: "https://github.com/acme/a"},
			{Name: "a/b", ImportURL: "https://github.com/acme/b"},
			{Name: "", ImportURL: "https://github.com/acme/c"},
		})

		require.Len(t, statuses, 3)
		for _, s := range statuses {
			assert.Equal(t, diaclass.RepositorySkipped, s.Action)
			assert.Equal(t, diaclass.EINVALID, diaclass.ErrorCode(s.Err))
		}
		assert.Empty(t, fake.calls)
	})

	t.Run("skips remaining repositories when context is cancelled", func(t *testing.T) {
		t.Parallel()

		fake := &fakeGit{}
		m := git.NewMaterializer(t.TempDir(), git.WithRunner(fake.run))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		statuses := m.Materialize(ctx, []*diaclass.Repository{{Name: "api", ImportURL: "https://x"}})

		require.Len(t, statuses, 1)
		assert.ErrorIs(t, statuses[0].Err, context.Canceled)
		assert.Empty(t, fake.calls)
	})

	t.Run("returns no statuses for no repositories", func(t *testing.T) {
		t.Parallel()

		m := git.NewMaterializer(t.TempDir(), git.WithRunner((&fakeGit{}).run))

		assert.Empty(t, m.Materialize(context.Background(), nil))
	})
}

func TestExecRunner(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	t.Run("includes command in error", func(t *testing.T) {
		t.Parallel()

		err := git.ExecRunner(context.Background(), t.TempDir(), "git", "-C", filepath.Join(t.TempDir(), "nope"), "pull")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "git -C")
	})

	t.Run("materializes a local repository twice with the same result", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		upstream := filepath.Join(t.TempDir(), "upstream")
		require.NoError(t, os.MkdirAll(upstream, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(upstream, "README.md"), []byte("# Upstream"), 0644))
		require.NoError(t, git.ExecRunner(ctx, upstream, "git", "init", "-q"))
		require.NoError(t, git.ExecRunner(ctx, upstream, "git", "add", "README.md"))
		require.NoError(t, git.ExecRunner(ctx, upstream, "git",
			"-c", "user.name=test", "-c", "user.email=test@example.com",
			"commit", "-q", "-m", "initial"))

		dir := t.TempDir()
		m := git.NewMaterializer(dir)
		repos := []*diaclass.Repository{{Name: "upstream", ImportURL: upstream + "?branch=main"}}

		first := m.Materialize(ctx, repos)
		require.Len(t, first, 1)
		require.NoError(t, first[0].Err)
		assert.Equal(t, diaclass.RepositoryCloned, first[0].Action)

		second := m.Materialize(ctx, repos)
		require.Len(t, second, 1)
		require.NoError(t, second[0].Err)
		assert.Equal(t, diaclass.RepositoryUpdated, second[0].Action)

		content, err := os.ReadFile(filepath.Join(dir, "upstream", "README.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Upstream", string(content))
	})
}
