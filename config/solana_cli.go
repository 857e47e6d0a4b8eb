package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrSolanaCLIConfigNotFound = errors.New("solana cli config not found")

// SolanaCLIConfig is the subset of the Solana CLI config file (~/.config/solana/cli/config.yml)
// that the echo CLI honours.
type SolanaCLIConfig struct {
	JSONRPCURL    string            `yaml:"json_rpc_url"`
	WebsocketURL  string            `yaml:"websocket_url"`
	KeypairPath   string            `yaml:"keypair_path"`
	AddressLabels map[string]string `yaml:"address_labels"`
	Commitment    string            `yaml:"commitment"`
}

func DefaultSolanaCLIConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "solana", "cli", "config.yml"), nil
}

// LoadSolanaCLIConfig reads the Solana CLI config at path. A missing file returns
// ErrSolanaCLIConfigNotFound.
func LoadSolanaCLIConfig(path string) (*SolanaCLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSolanaCLIConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read solana cli config: %w", err)
	}

	var cfg SolanaCLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse solana cli config: %w", err)
	}

	switch cfg.Commitment {
	case "", "processed", "confirmed", "finalized":
	default:
		return nil, fmt.Errorf("invalid commitment %q in solana cli config", cfg.Commitment)
	}

	return &cfg, nil
}
