package cli

import (
	"fmt"
	"os"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/malbeclabs/solana-echo/config"
	"github.com/spf13/cobra"
)

// settings are the root flags resolved against the environment and the optional Solana
// CLI config. Precedence: explicit flag, then ECHO_RPC_URL, then Solana CLI config, then
// environment defaults.
type settings struct {
	Verbose     bool
	Network     *config.NetworkConfig
	KeypairPath string
	Commitment  solanarpc.CommitmentType
}

type rootFlags struct {
	verbose          bool
	env              string
	rpcURL           string
	rpcURLSet        bool
	keypair          string
	keypairSet       bool
	commitment       string
	commitmentSet    bool
	solanaConfigPath string
}

func settingsFromCommand(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	var f rootFlags
	var err error
	if f.verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if f.env, err = flags.GetString("env"); err != nil {
		return nil, fmt.Errorf("failed to get env flag: %w", err)
	}
	if f.rpcURL, err = flags.GetString("rpc-url"); err != nil {
		return nil, fmt.Errorf("failed to get rpc-url flag: %w", err)
	}
	if f.keypair, err = flags.GetString("keypair"); err != nil {
		return nil, fmt.Errorf("failed to get keypair flag: %w", err)
	}
	if f.commitment, err = flags.GetString("commitment"); err != nil {
		return nil, fmt.Errorf("failed to get commitment flag: %w", err)
	}
	if f.solanaConfigPath, err = flags.GetString("solana-config"); err != nil {
		return nil, fmt.Errorf("failed to get solana-config flag: %w", err)
	}
	f.rpcURLSet = flags.Changed("rpc-url")
	f.keypairSet = flags.Changed("keypair")
	f.commitmentSet = flags.Changed("commitment")

	return resolveSettings(f)
}

func resolveSettings(f rootFlags) (*settings, error) {
	network, err := config.NetworkConfigForEnv(f.env)
	if err != nil {
		return nil, err
	}

	var cliConfig *config.SolanaCLIConfig
	if f.solanaConfigPath != "" {
		cliConfig, err = config.LoadSolanaCLIConfig(f.solanaConfigPath)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case f.rpcURLSet:
		network.RPCURL = f.rpcURL
	case os.Getenv(config.EnvVarRPCURL) != "":
	case cliConfig != nil && cliConfig.JSONRPCURL != "":
		network.RPCURL = cliConfig.JSONRPCURL
	}

	keypairPath := f.keypair
	if !f.keypairSet && cliConfig != nil && cliConfig.KeypairPath != "" {
		keypairPath = cliConfig.KeypairPath
	}

	commitment := f.commitment
	if !f.commitmentSet && cliConfig != nil && cliConfig.Commitment != "" {
		commitment = cliConfig.Commitment
	}
	switch solanarpc.CommitmentType(commitment) {
	case solanarpc.CommitmentProcessed, solanarpc.CommitmentConfirmed, solanarpc.CommitmentFinalized:
	default:
		return nil, fmt.Errorf("invalid commitment %q, must be one of: processed, confirmed, finalized", commitment)
	}

	return &settings{
		Verbose:     f.verbose,
		Network:     network,
		KeypairPath: keypairPath,
		Commitment:  solanarpc.CommitmentType(commitment),
	}, nil
}
