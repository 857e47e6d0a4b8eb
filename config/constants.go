package config

const (
	// Mainnet constants.
	MainnetRPCURL       = "https://api.mainnet-beta.solana.com"
	MainnetWebsocketURL = "wss://api.mainnet-beta.solana.com"

	// Testnet constants.
	TestnetRPCURL       = "https://api.testnet.solana.com"
	TestnetWebsocketURL = "wss://api.testnet.solana.com"

	// Devnet constants.
	DevnetRPCURL       = "https://api.devnet.solana.com"
	DevnetWebsocketURL = "wss://api.devnet.solana.com"

	// Localnet constants, matching solana-test-validator defaults.
	LocalnetRPCURL       = "http://127.0.0.1:8899"
	LocalnetWebsocketURL = "ws://127.0.0.1:8900"

	// ExplorerBaseURL is the Solana explorer used to link transactions.
	ExplorerBaseURL = "https://explorer.solana.com"
)
