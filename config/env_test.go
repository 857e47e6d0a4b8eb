package config_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_NetworkConfigForEnv(t *testing.T) {
	tests := []struct {
		env     string
		want    *config.NetworkConfig
		wantErr error
	}{
		{
			env: config.EnvMainnet,
			want: &config.NetworkConfig{
				Moniker:      config.EnvMainnetBeta,
				RPCURL:       config.MainnetRPCURL,
				WebsocketURL: config.MainnetWebsocketURL,
			},
		},
		{
			env: config.EnvMainnetBeta,
			want: &config.NetworkConfig{
				Moniker:      config.EnvMainnetBeta,
				RPCURL:       config.MainnetRPCURL,
				WebsocketURL: config.MainnetWebsocketURL,
			},
		},
		{
			env: config.EnvTestnet,
			want: &config.NetworkConfig{
				Moniker:         config.EnvTestnet,
				RPCURL:          config.TestnetRPCURL,
				WebsocketURL:    config.TestnetWebsocketURL,
				ExplorerCluster: config.EnvTestnet,
			},
		},
		{
			env: config.EnvDevnet,
			want: &config.NetworkConfig{
				Moniker:         config.EnvDevnet,
				RPCURL:          config.DevnetRPCURL,
				WebsocketURL:    config.DevnetWebsocketURL,
				ExplorerCluster: config.EnvDevnet,
			},
		},
		{
			env: config.EnvLocalnet,
			want: &config.NetworkConfig{
				Moniker:         config.EnvLocalnet,
				RPCURL:          config.LocalnetRPCURL,
				WebsocketURL:    config.LocalnetWebsocketURL,
				ExplorerCluster: "custom",
			},
		},
		{
			env:     "invalid",
			wantErr: config.ErrInvalidEnvironment,
		},
	}

	for _, test := range tests {
		t.Run(test.env, func(t *testing.T) {
			t.Setenv(config.EnvVarRPCURL, "")

			got, err := config.NetworkConfigForEnv(test.env)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}

func TestConfig_NetworkConfigForEnv_RPCURLOverride(t *testing.T) {
	t.Setenv(config.EnvVarRPCURL, "http://localhost:9999")

	got, err := config.NetworkConfigForEnv(config.EnvDevnet)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9999", got.RPCURL)
	require.Equal(t, config.DevnetWebsocketURL, got.WebsocketURL)
}

func TestConfig_NetworkConfig_ExplorerTxURL(t *testing.T) {
	t.Setenv(config.EnvVarRPCURL, "")

	var sig solana.Signature
	copy(sig[:], []byte("fake-sig-0000000000000000000000000000000"))

	tests := []struct {
		env  string
		want string
	}{
		{env: config.EnvMainnetBeta, want: config.ExplorerBaseURL + "/tx/" + sig.String()},
		{env: config.EnvDevnet, want: config.ExplorerBaseURL + "/tx/" + sig.String() + "?cluster=devnet"},
		{env: config.EnvLocalnet, want: config.ExplorerBaseURL + "/tx/" + sig.String() + "?cluster=custom&customUrl=http%3A%2F%2F127.0.0.1%3A8899"},
	}

	for _, test := range tests {
		t.Run(test.env, func(t *testing.T) {
			cfg, err := config.NetworkConfigForEnv(test.env)
			require.NoError(t, err)
			require.Equal(t, test.want, cfg.ExplorerTxURL(sig))
		})
	}
}
