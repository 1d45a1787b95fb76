package fs_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/stock/pkg/adapters/fs"
	"github.com/aretw0/stock/pkg/core"
)

func TestWatch_EmitsOnSave(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "inventory.json")
	repo := fs.NewRepository(fs.Config{Path: path})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)

	inv := core.NewInventory()
	inv.Set("apple", 7)
	require.NoError(t, repo.Save(ctx, inv))

	select {
	case e := <-events:
		assert.Equal(t, path, e.Path)
		assert.NotEqual(t, core.EventDelete, e.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	cancel()
	drain(t, events)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: filepath.Join(dir, "inventory.json")})
	other := fs.NewRepository(fs.Config{Path: filepath.Join(dir, "other.json")})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)

	require.NoError(t, other.Save(ctx, core.NewInventory()))

	select {
	case e, ok := <-events:
		if ok {
			t.Fatalf("unexpected event %s", e)
		}
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	drain(t, events)
}

func TestWatch_Pattern(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: filepath.Join(dir, "inventory.json")})
	backup := fs.NewRepository(fs.Config{Path: filepath.Join(dir, "backup.json")})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "*.json")
	require.NoError(t, err)

	require.NoError(t, backup.Save(ctx, core.NewInventory()))

	select {
	case e := <-events:
		assert.Equal(t, "backup.json", filepath.Base(e.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	cancel()
	drain(t, events)
}

func TestWatch_InvalidPattern(t *testing.T) {
	repo := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "inventory.json")})

	_, err := repo.Watch(context.Background(), "[")
	assert.Error(t, err)
}

func TestWatch_StateTracksWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := fs.NewRepository(fs.Config{Path: filepath.Join(t.TempDir(), "inventory.json")})
	ctx, cancel := context.WithCancel(context.Background())

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)
	assert.True(t, repo.State().(fs.RepositoryState).WatcherActive)

	cancel()
	drain(t, events)
	assert.False(t, repo.State().(fs.RepositoryState).WatcherActive)
}

// drain waits for the watcher to close its channel after cancellation.
func drain(t *testing.T, events <-chan core.Event) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel was not closed after cancel")
		}
	}
}
