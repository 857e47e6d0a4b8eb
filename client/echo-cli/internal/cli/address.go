package cli

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/mr-tron/base58"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type AddressCmd struct{}

func NewAddressCmd() *AddressCmd {
	return &AddressCmd{}
}

func (c *AddressCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address <program-id>",
		Short: "Show the derived buffer address and its seeds",
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

			return printAddress(cmd.OutOrStdout(), programID, authority, bufferSeed)
		},
	}

	addBufferSeedFlag(cmd)
	addAuthorityFlag(cmd)

	return cmd
}

func printAddress(w io.Writer, programID, authority solana.PublicKey, bufferSeed uint64) error {
	seeds := echo.AuthorizedBufferSeeds(authority, bufferSeed)
	address, bump, err := echo.DeriveAddress(programID, seeds)
	if err != nil {
		return fmt.Errorf("failed to derive buffer address: %w", err)
	}

	fmt.Fprintln(w, "Program:", programID)
	fmt.Fprintln(w, "Authority:", authority)
	fmt.Fprintln(w, "Buffer seed:", bufferSeed)
	fmt.Fprintln(w, "Buffer address:", address)
	fmt.Fprintln(w, "Bump:", bump)

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"#", "Seed", "Len", "Base58"})

	for i, seed := range append(seeds, []byte{bump}) {
		table.Append([]string{
			strconv.Itoa(i),
			displaySeed(seed),
			strconv.Itoa(len(seed)),
			base58.Encode(seed),
		})
	}
	table.Render()
	return nil
}

func displaySeed(seed []byte) string {
	if utf8.Valid(seed) {
		printable := true
		for _, r := range string(seed) {
			if r < 0x20 || r == 0x7f {
				printable = false
				break
			}
		}
		if printable {
			return strconv.Quote(string(seed))
		}
	}
	return fmt.Sprintf("0x%x", seed)
}
