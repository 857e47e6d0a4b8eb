package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/keystore"
	"github.com/spf13/cobra"
)

type EchoCmd struct{}

func NewEchoCmd() *EchoCmd {
	return &EchoCmd{}
}

func (c *EchoCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "echo <program-id> <buffer> <data>",
		Short: "Copy data into an existing buffer account without authorization",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCommand(cmd)
			if err != nil {
				return err
			}
			programID, err := parseProgramID(args[0])
			if err != nil {
				return err
			}
			buffer, err := solana.PublicKeyFromBase58(args[1])
			if err != nil {
				return fmt.Errorf("invalid buffer address %q: %w", args[1], err)
			}

			log := newLogger(s.Verbose)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			signer, err := keystore.Load(s.KeypairPath)
			if err != nil {
				return fmt.Errorf("failed to load fee payer key: %w", err)
			}

			client := newClient(log, newRPCLedger(log, s), programID)
			sig, err := client.Echo(ctx, &signer, buffer, []byte(args[2]))
			if err != nil {
				return fmt.Errorf("failed to echo: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Transaction signature: %s\n", sig)
			fmt.Fprintf(cmd.OutOrStdout(), "Explorer: %s\n", s.Network.ExplorerTxURL(sig))
			return nil
		},
	}

	return cmd
}
