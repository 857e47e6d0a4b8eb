package cli

import (
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/keystore"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/metrics"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/spf13/cobra"
)

func parseProgramID(s string) (solana.PublicKey, error) {
	programID, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program id %q: %w", s, err)
	}
	return programID, nil
}

// authorityPublicKey returns the --authority flag if given, otherwise the public key of
// the keypair file.
func authorityPublicKey(cmd *cobra.Command, s *settings) (solana.PublicKey, error) {
	authority, err := cmd.Flags().GetString("authority")
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to get authority flag: %w", err)
	}
	if authority != "" {
		pk, err := solana.PublicKeyFromBase58(authority)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("invalid authority %q: %w", authority, err)
		}
		return pk, nil
	}
	key, err := keystore.Load(s.KeypairPath)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}

func addAuthorityFlag(cmd *cobra.Command) {
	cmd.Flags().String("authority", "", "Authority public key (defaults to the keypair's)")
}

func newRPCLedger(log *slog.Logger, s *settings, opts ...echo.LedgerOption) *echo.RPCLedger {
	rpcClient := solanarpc.New(s.Network.RPCURL)
	opts = append([]echo.LedgerOption{echo.WithCommitment(s.Commitment)}, opts...)
	return echo.NewRPCLedger(log, rpcClient, opts...)
}

func newClient(log *slog.Logger, ledger echo.Ledger, programID solana.PublicKey) *echo.Client {
	return echo.New(log, ledger, programID)
}

// newInstrumentedClient records ledger metrics. Only long-running commands that serve
// /metrics use it.
func newInstrumentedClient(log *slog.Logger, ledger echo.Ledger, programID solana.PublicKey) *echo.Client {
	return echo.New(log, metrics.NewInstrumentedLedger(ledger), programID)
}
