package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/solana-echo/config"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1

	defaultKeypairPath = "./auth.key"
	defaultAirdropSOL  = 2
)

type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func Run(info BuildInfo) ExitCode {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	rootCmd := NewRootCmd(info)
	if err := rootCmd.Execute(); err != nil {
		return exitCodeError
	}

	return exitCodeSuccess
}

func NewRootCmd(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "echo-cli",
		Short: "Client for the echo program's authority-gated buffers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")
	rootCmd.PersistentFlags().StringP("env", "e", config.EnvDevnet, "The network environment (mainnet-beta, testnet, devnet, localnet)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Override the RPC URL of the environment")
	rootCmd.PersistentFlags().String("keypair", defaultKeypairPath, "Path to the authority keypair file")
	rootCmd.PersistentFlags().String("commitment", "confirmed", "Commitment level (processed, confirmed, finalized)")
	rootCmd.PersistentFlags().String("solana-config", "", "Path to a Solana CLI config file to take defaults from")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(
		NewWriteCmd().Command(),
		NewReadCmd().Command(),
		NewEchoCmd().Command(),
		NewAddressCmd().Command(),
		NewDecodeCmd().Command(),
		NewWatchCmd(info).Command(),
		NewVersionCmd(info).Command(),
	)

	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func addBufferSeedFlag(cmd *cobra.Command) {
	cmd.Flags().Uint64("buffer-seed", echo.DefaultBufferSeed, "Seed distinguishing buffers of the same authority")
}
