package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/malbeclabs/solana-echo/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadSolanaCLIConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`---
json_rpc_url: "https://api.devnet.solana.com"
websocket_url: ""
keypair_path: /home/sol/.config/solana/id.json
address_labels:
  "11111111111111111111111111111111": System Program
commitment: confirmed
`), 0o600))

	cfg, err := config.LoadSolanaCLIConfig(path)
	require.NoError(t, err)
	require.Equal(t, &config.SolanaCLIConfig{
		JSONRPCURL:    "https://api.devnet.solana.com",
		KeypairPath:   "/home/sol/.config/solana/id.json",
		AddressLabels: map[string]string{"11111111111111111111111111111111": "System Program"},
		Commitment:    "confirmed",
	}, cfg)
}

func TestConfig_LoadSolanaCLIConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.LoadSolanaCLIConfig(filepath.Join(dir, "nope.yml"))
		require.ErrorIs(t, err, config.ErrSolanaCLIConfigNotFound)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "invalid.yml")
		require.NoError(t, os.WriteFile(path, []byte("json_rpc_url: [unterminated"), 0o600))
		_, err := config.LoadSolanaCLIConfig(path)
		require.ErrorContains(t, err, "failed to parse solana cli config")
	})

	t.Run("invalid commitment", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "commitment.yml")
		require.NoError(t, os.WriteFile(path, []byte("commitment: recent\n"), 0o600))
		_, err := config.LoadSolanaCLIConfig(path)
		require.ErrorContains(t, err, `invalid commitment "recent"`)
	})
}

func TestConfig_DefaultSolanaCLIConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := config.DefaultSolanaCLIConfigPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "solana", "cli", "config.yml"), path)
}
