package platform_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stock/internal/platform"
	"github.com/aretw0/stock/pkg/adapters/fs"
	"github.com/aretw0/stock/pkg/adapters/sqlite"
	"github.com/aretw0/stock/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("JSON Path Uses FS Adapter", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inventory.json")

		repo, err := platform.Init(path)
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository, got %T", repo)
		assert.Equal(t, path, fsRepo.Path)
	})

	t.Run("DB Path Uses SQLite Adapter", func(t *testing.T) {
		repo, err := platform.Init(filepath.Join(t.TempDir(), "stock.db"))
		require.NoError(t, err)

		_, ok := repo.(*sqlite.Repository)
		assert.True(t, ok, "expected sqlite repository, got %T", repo)
	})

	t.Run("Explicit Adapter Wins", func(t *testing.T) {
		repo, err := platform.Init(filepath.Join(t.TempDir(), "stock.db"), platform.WithAdapter(platform.AdapterFS))
		require.NoError(t, err)

		_, ok := repo.(*fs.Repository)
		assert.True(t, ok, "expected fs repository, got %T", repo)
	})

	t.Run("Unknown Adapter Fails", func(t *testing.T) {
		_, err := platform.Init("inventory.json", platform.WithAdapter("s3"))
		assert.Error(t, err)
	})

	t.Run("Directory Path Fails Initialize", func(t *testing.T) {
		_, err := platform.Init(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("Injected Repository Is Returned As Is", func(t *testing.T) {
		injected := fs.NewRepository(fs.Config{Path: "ignored.json"})

		repo, err := platform.Init("other.json", platform.WithRepository(injected))
		require.NoError(t, err)
		assert.Same(t, injected, repo)
	})

	t.Run("Read Only Propagates", func(t *testing.T) {
		repo, err := platform.Init(filepath.Join(t.TempDir(), "inventory.yaml"), platform.WithReadOnly(true))
		require.NoError(t, err)

		err = repo.Save(context.Background(), core.NewInventory())
		assert.True(t, errors.Is(err, core.ErrReadOnly))
	})

	t.Run("Serializer Override", func(t *testing.T) {
		repo, err := platform.Init(filepath.Join(t.TempDir(), "inventory.json"), platform.WithSerializer(fs.NewYAMLSerializer()))
		require.NoError(t, err)

		state := repo.(*fs.Repository).State().(fs.RepositoryState)
		assert.Equal(t, "*fs.YAMLSerializer", state.Serializer)
	})
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	var out bytes.Buffer

	svc, err := platform.New(path, platform.WithOutput(&out))
	require.NoError(t, err)

	ctx := context.Background()
	inv, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "not found. Starting with empty inventory.")

	require.NoError(t, svc.Add(inv, "apple", 4, nil))
	require.NoError(t, svc.Save(ctx, inv))

	reloaded, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.0, reloaded.Qty("apple"))
	assert.Equal(t, path, svc.Repository().Location())
}
