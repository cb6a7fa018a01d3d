package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	t.Parallel()

	root := writeQueries(t, map[string]string{"a.cypher": "RETURN 1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 10)
	done := make(chan error, 1)

	go func() {
		done <- New().Watch(ctx, []string{root}, func(context.Context) error {
			runs <- struct{}{}

			return nil
		})
	}()

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.cypher"), []byte("RETURN 2"), 0o600))

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("no re-run after write")
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatched(t *testing.T) {
	t.Parallel()

	r := New()

	abs, err := filepath.Abs("explicit.txt")
	require.NoError(t, err)

	files := map[string]struct{}{abs: {}}

	assert.True(t, r.watched("x/a.cypher", files))
	assert.True(t, r.watched("x/a.cql", files))
	assert.True(t, r.watched("explicit.txt", files))
	assert.False(t, r.watched("x/a.txt", files))
	assert.False(t, r.watched("x/Makefile", files))
}

func TestWatchDirs(t *testing.T) {
	t.Parallel()

	root := writeQueries(t, map[string]string{
		".gitignore":              "node_modules/\n",
		"a.cypher":                "RETURN 1",
		"src/deep/b.cypher":       "RETURN 2",
		"docs/readme.md":          "# queries",
		"node_modules/x/c.cypher": "RETURN 3",
		".cache/d.cypher":         "RETURN 4",
	})

	dirs, err := New().watchDirs(root)
	require.NoError(t, err)

	want := []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "deep"),
	}
	assert.Equal(t, want, dirs)
}

func TestWatchNewDirectory(t *testing.T) {
	t.Parallel()

	root := writeQueries(t, map[string]string{"a.cypher": "RETURN 1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan struct{}, 10)
	done := make(chan error, 1)

	go func() {
		done <- New().Watch(ctx, []string{root}, func(context.Context) error {
			runs <- struct{}{}

			return nil
		})
	}()

	wait := func(what string) {
		t.Helper()

		select {
		case <-runs:
		case <-time.After(5 * time.Second):
			t.Fatal(what)
		}
	}

	wait("initial run did not happen")

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	wait("no re-run after directory creation")

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.cypher"), []byte("RETURN 2"), 0o600))

	wait("no re-run after write in new directory")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
