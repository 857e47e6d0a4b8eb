package keystore

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
)

var ErrKeyNotFound = errors.New("key file not found")

// Load reads a Solana keygen file: a JSON array of the 64 secret key bytes.
func Load(path string) (solana.PrivateKey, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat key file: %w", err)
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load key file: %w", err)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("key file %s holds %d bytes, want %d", path, len(key), ed25519.PrivateKeySize)
	}
	return key, nil
}

// LoadOrCreate loads the key at path, generating and saving a new one if the file does
// not exist. The returned bool reports whether a key was created.
func LoadOrCreate(path string) (solana.PrivateKey, bool, error) {
	key, err := Load(path)
	if err == nil {
		return key, false, nil
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, false, err
	}

	key, err = solana.NewRandomPrivateKey()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate key: %w", err)
	}
	if err := Save(path, key); err != nil {
		return nil, false, err
	}
	return key, true, nil
}

// Save writes key in the Solana keygen format, readable only by the owner.
func Save(path string, key solana.PrivateKey) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create key directory: %w", err)
		}
	}

	// Marshalled as numbers; a []byte would encode as base64.
	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}
