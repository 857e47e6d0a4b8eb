package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type DecodeCmd struct{}

func NewDecodeCmd() *DecodeCmd {
	return &DecodeCmd{}
}

func (c *DecodeCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode raw echo program instruction data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDecoded(cmd.OutOrStdout(), args[0])
		},
	}

	return cmd
}

func printDecoded(w io.Writer, input string) error {
	input = strings.TrimPrefix(strings.TrimSpace(input), "0x")
	data, err := hex.DecodeString(input)
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}

	ix, err := echo.DecodeInstruction(data)
	if err != nil {
		return fmt.Errorf("failed to decode instruction: %w", err)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"Field", "Value"})

	table.Append([]string{"Instruction", ix.Type.String()})
	table.Append([]string{"Discriminant", strconv.Itoa(int(ix.Type))})
	switch ix.Type {
	case echo.InitializeAuthorizedEchoInstructionIndex:
		table.Append([]string{"Buffer seed", strconv.FormatUint(ix.BufferSeed, 10)})
		table.Append([]string{"Buffer size", strconv.FormatUint(ix.BufferSize, 10)})
	case echo.InitializeVendingMachineEchoInstructionIndex:
		table.Append([]string{"Price", strconv.FormatUint(ix.Price, 10)})
		table.Append([]string{"Buffer size", strconv.FormatUint(ix.BufferSize, 10)})
	default:
		table.Append([]string{"Data length", strconv.Itoa(len(ix.Data))})
		table.Append([]string{"Data (hex)", hex.EncodeToString(ix.Data)})
		table.Append([]string{"Data (text)", strconv.Quote(string(ix.Data))})
	}
	table.Render()
	return nil
}
