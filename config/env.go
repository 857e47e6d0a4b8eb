package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/gagliardetto/solana-go"
)

const (
	EnvMainnetBeta = "mainnet-beta"
	EnvMainnet     = "mainnet"
	EnvTestnet     = "testnet"
	EnvDevnet      = "devnet"
	EnvLocalnet    = "localnet"

	// EnvVarRPCURL overrides the RPC URL of whichever environment is selected.
	EnvVarRPCURL = "ECHO_RPC_URL"
)

var (
	ErrInvalidEnvironment = fmt.Errorf("invalid environment")
)

type NetworkConfig struct {
	Moniker         string
	RPCURL          string
	WebsocketURL    string
	ExplorerCluster string
}

func NetworkConfigForEnv(env string) (*NetworkConfig, error) {
	var config *NetworkConfig
	switch env {
	case EnvMainnetBeta, EnvMainnet:
		config = &NetworkConfig{
			Moniker:         EnvMainnetBeta,
			RPCURL:          MainnetRPCURL,
			WebsocketURL:    MainnetWebsocketURL,
			ExplorerCluster: "",
		}
	case EnvTestnet:
		config = &NetworkConfig{
			Moniker:         EnvTestnet,
			RPCURL:          TestnetRPCURL,
			WebsocketURL:    TestnetWebsocketURL,
			ExplorerCluster: EnvTestnet,
		}
	case EnvDevnet:
		config = &NetworkConfig{
			Moniker:         EnvDevnet,
			RPCURL:          DevnetRPCURL,
			WebsocketURL:    DevnetWebsocketURL,
			ExplorerCluster: EnvDevnet,
		}
	case EnvLocalnet:
		config = &NetworkConfig{
			Moniker:         EnvLocalnet,
			RPCURL:          LocalnetRPCURL,
			WebsocketURL:    LocalnetWebsocketURL,
			ExplorerCluster: "custom",
		}
	default:
		return nil, fmt.Errorf("%w %q, must be one of: %s, %s, %s, %s", ErrInvalidEnvironment, env, EnvMainnetBeta, EnvTestnet, EnvDevnet, EnvLocalnet)
	}

	rpcURL := os.Getenv(EnvVarRPCURL)
	if rpcURL != "" {
		config.RPCURL = rpcURL
	}

	return config, nil
}

// ExplorerTxURL returns the explorer link for a transaction signature on this network.
func (c *NetworkConfig) ExplorerTxURL(sig solana.Signature) string {
	u := ExplorerBaseURL + "/tx/" + sig.String()
	switch c.ExplorerCluster {
	case "":
		return u
	case "custom":
		return u + "?cluster=custom&customUrl=" + url.QueryEscape(c.RPCURL)
	default:
		return u + "?cluster=" + c.ExplorerCluster
	}
}
