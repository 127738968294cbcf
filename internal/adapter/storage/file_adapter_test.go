package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key returns nil", func(t *testing.T) {
		f, err := NewFileAdapter(t.TempDir())
		require.NoError(t, err)

		data, err := f.Get(ctx, "@RocketShoes:cart")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("set then get", func(t *testing.T) {
		f, err := NewFileAdapter(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, f.Set(ctx, "@RocketShoes:cart", []byte(`[{"id":1,"amount":1}]`)))
		require.NoError(t, f.Set(ctx, "@RocketShoes:cart", []byte(`[]`)))

		data, err := f.Get(ctx, "@RocketShoes:cart")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("key is escaped into a single file", func(t *testing.T) {
		dir := t.TempDir()
		f, err := NewFileAdapter(dir)
		require.NoError(t, err)

		require.NoError(t, f.Set(ctx, "carts/../x", []byte(`[]`)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, dir, filepath.Dir(f.Path("carts/../x")))
	})

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		_, err := NewFileAdapter(dir)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
