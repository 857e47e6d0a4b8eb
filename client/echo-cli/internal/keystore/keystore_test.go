package keystore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/keystore"
	"github.com/stretchr/testify/require"
)

func TestKeystore_LoadOrCreate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "keys", "auth.key")

	created, isNew, err := keystore.LoadOrCreate(path)
	require.NoError(t, err)
	require.True(t, isNew)
	require.Len(t, created, 64)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, isNew, err := keystore.LoadOrCreate(path)
	require.NoError(t, err)
	require.False(t, isNew)
	require.Equal(t, created, loaded)
	require.Equal(t, created.PublicKey(), loaded.PublicKey())
}

func TestKeystore_Save_KeygenFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "id.json")
	key := solana.NewWallet().PrivateKey
	require.NoError(t, keystore.Save(path, key))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var ints []int
	require.NoError(t, json.Unmarshal(raw, &ints))
	require.Len(t, ints, 64)
	for i, b := range key {
		require.Equal(t, int(b), ints[i])
	}

	// Readable by the solana-go keygen loader.
	loaded, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	require.NoError(t, err)
	require.Equal(t, key, loaded)
}

func TestKeystore_Load_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := keystore.Load(filepath.Join(dir, "missing.key"))
	require.ErrorIs(t, err, keystore.ErrKeyNotFound)

	corrupt := filepath.Join(dir, "corrupt.key")
	require.NoError(t, os.WriteFile(corrupt, []byte("not json"), 0o600))
	_, err = keystore.Load(corrupt)
	require.ErrorContains(t, err, "failed to load key file")

	_, _, err = keystore.LoadOrCreate(corrupt)
	require.ErrorContains(t, err, "failed to load key file")
}
