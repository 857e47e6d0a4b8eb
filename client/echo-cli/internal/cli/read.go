package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/spf13/cobra"
)

type ReadCmd struct{}

func NewReadCmd() *ReadCmd {
	return &ReadCmd{}
}

func (c *ReadCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <program-id>",
		Short: "Read the content of the authority's buffer",
		Args:  cobra.ExactArgs(1),
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
			authority, err := authorityPublicKey(cmd, s)
			if err != nil {
				return err
			}

			log := newLogger(s.Verbose)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			client := newClient(log, newRPCLedger(log, s), programID)
			return readBuffer(ctx, cmd.OutOrStdout(), client, authority, bufferSeed)
		},
	}

	addBufferSeedFlag(cmd)
	addAuthorityFlag(cmd)

	return cmd
}

// readBuffer prints the buffer content. A missing account is reported on w and is not
// an error.
func readBuffer(ctx context.Context, w io.Writer, client *echo.Client, authority solana.PublicKey, bufferSeed uint64) error {
	data, err := client.Read(ctx, authority, bufferSeed)
	if err != nil {
		if errors.Is(err, echo.ErrAccountNotFound) {
			bufferPK, _, derr := client.BufferAddress(authority, bufferSeed)
			if derr != nil {
				return fmt.Errorf("failed to derive buffer address: %w", derr)
			}
			fmt.Fprintf(w, "Failed to get account with address '%s'\n", bufferPK)
			return nil
		}
		return fmt.Errorf("failed to read buffer: %w", err)
	}

	fmt.Fprintf(w, "Data in the buffer: \"%s\"\n", strings.ToValidUTF8(string(data), "�"))
	return nil
}
