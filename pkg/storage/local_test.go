package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePreservesSubdirectories(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root, zerolog.Nop())
	require.NoError(t, err)

	name, err := store.Store(context.Background(), "avatars/avatar_7.png", bytes.NewReader([]byte("data")))
	require.NoError(t, err)
	require.Equal(t, "avatars/avatar_7.png", name)

	written, err := os.ReadFile(filepath.Join(root, "avatars", "avatar_7.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("data"), written)
}

func TestLocalStoreOverwrites(t *testing.T) {
	store, err := NewLocal(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	_, err = store.Store(context.Background(), "avatar.png", bytes.NewReader([]byte("first")))
	require.NoError(t, err)
	_, err = store.Store(context.Background(), "avatar.png", bytes.NewReader([]byte("second")))
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(store.Root(), "avatar.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("second"), written)
}

func TestLocalStoreRejectsEscape(t *testing.T) {
	store, err := NewLocal(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	_, err = store.Store(context.Background(), "../outside.png", bytes.NewReader([]byte("x")))
	require.Error(t, err)

	_, err = store.Store(context.Background(), "/etc/passwd", bytes.NewReader([]byte("x")))
	require.Error(t, err)
}
