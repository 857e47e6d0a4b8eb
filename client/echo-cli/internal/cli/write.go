package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/keystore"
	"github.com/malbeclabs/solana-echo/config"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/spf13/cobra"
)

type WriteCmd struct{}

func NewWriteCmd() *WriteCmd {
	return &WriteCmd{}
}

func (c *WriteCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <program-id> <data>",
		Short: "Write data to the authority's buffer, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCommand(cmd)
			if err != nil {
				return err
			}
			programID, err := parseProgramID(args[0])
			if err != nil {
				return err
			}
			bufferSeed, err := cmd.Flags().GetUint64("buffer-seed")
			if err != nil {
				return fmt.Errorf("failed to get buffer-seed flag: %w", err)
			}
			airdropSOL, err := cmd.Flags().GetFloat64("airdrop-sol")
			if err != nil {
				return fmt.Errorf("failed to get airdrop-sol flag: %w", err)
			}
			skipPreflight, err := cmd.Flags().GetBool("skip-preflight")
			if err != nil {
				return fmt.Errorf("failed to get skip-preflight flag: %w", err)
			}

			log := newLogger(s.Verbose)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			authority, created, err := keystore.LoadOrCreate(s.KeypairPath)
			if err != nil {
				return fmt.Errorf("failed to load authority key: %w", err)
			}
			if created {
				log.Info("Generated new authority key", "path", s.KeypairPath, "authority", authority.PublicKey())
			}

			ledger := newRPCLedger(log, s, echo.WithSkipPreflight(skipPreflight))

			airdropSOL = airdropAmount(s.Network.Moniker, airdropSOL, cmd.Flags().Changed("airdrop-sol"))
			fundAuthority(ctx, log, ledger, authority.PublicKey(), airdropSOL)

			client := newClient(log, ledger, programID)
			sig, err := client.Write(ctx, &authority, bufferSeed, []byte(args[1]))
			if err != nil {
				return fmt.Errorf("failed to write to buffer: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Transaction signature: %s\n", sig)
			fmt.Fprintf(cmd.OutOrStdout(), "Explorer: %s\n", s.Network.ExplorerTxURL(sig))
			return nil
		},
	}

	addBufferSeedFlag(cmd)
	cmd.Flags().Float64("airdrop-sol", 0, fmt.Sprintf("SOL to airdrop to the authority before writing (default %d on devnet, testnet and localnet)", defaultAirdropSOL))
	cmd.Flags().Bool("skip-preflight", true, "Skip transaction simulation before sending")

	return cmd
}

type airdropper interface {
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) error
}

// airdropAmount returns the SOL to request before a write. Unless --airdrop-sol is given,
// only clusters with a faucet get an airdrop.
func airdropAmount(moniker string, flagValue float64, flagSet bool) float64 {
	if flagSet {
		return flagValue
	}
	switch moniker {
	case config.EnvDevnet, config.EnvTestnet, config.EnvLocalnet:
		return defaultAirdropSOL
	default:
		return 0
	}
}

// fundAuthority requests an airdrop of sol to authority. A failed airdrop is logged and
// the write goes ahead with the existing balance.
func fundAuthority(ctx context.Context, log *slog.Logger, a airdropper, authority solana.PublicKey, sol float64) {
	if sol <= 0 {
		return
	}
	lamports := uint64(sol * float64(solana.LAMPORTS_PER_SOL))
	log.Info("Requesting airdrop", "authority", authority, "sol", sol)
	if err := a.RequestAirdrop(ctx, authority, lamports); err != nil {
		log.Warn("Airdrop failed, continuing with the current balance", "authority", authority, "error", err)
		return
	}
	log.Info("Airdrop received", "authority", authority)
}
