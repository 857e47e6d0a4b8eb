package echo

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// The program does not implement the vending machine variants yet, so it defines no
// account layout for them and callers pass the accounts explicitly.

type InitializeVendingMachineEchoInstructionConfig struct {
	Accounts   solana.AccountMetaSlice
	Price      uint64
	BufferSize uint64
}

func (c *InitializeVendingMachineEchoInstructionConfig) Validate() error {
	for i, meta := range c.Accounts {
		if meta == nil || meta.PublicKey.IsZero() {
			return fmt.Errorf("account %d public key is required", i)
		}
	}
	return nil
}

func BuildInitializeVendingMachineEchoInstruction(
	programID solana.PublicKey,
	config InitializeVendingMachineEchoInstructionConfig,
) (*Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	payload, err := borsh.Serialize(struct {
		Price      uint64
		BufferSize uint64
	}{
		Price:      config.Price,
		BufferSize: config.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize args: %w", err)
	}

	return newInstruction(programID, InitializeVendingMachineEchoInstructionIndex, payload, copyAccountMetas(config.Accounts)), nil
}

type VendingMachineEchoInstructionConfig struct {
	Accounts solana.AccountMetaSlice
	Data     []byte
}

func (c *VendingMachineEchoInstructionConfig) Validate() error {
	for i, meta := range c.Accounts {
		if meta == nil || meta.PublicKey.IsZero() {
			return fmt.Errorf("account %d public key is required", i)
		}
	}
	return nil
}

func BuildVendingMachineEchoInstruction(
	programID solana.PublicKey,
	config VendingMachineEchoInstructionConfig,
) (*Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	payload, err := serializeLengthPrefixed(config.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize args: %w", err)
	}

	return newInstruction(programID, VendingMachineEchoInstructionIndex, payload, copyAccountMetas(config.Accounts)), nil
}

func copyAccountMetas(metas solana.AccountMetaSlice) solana.AccountMetaSlice {
	out := make(solana.AccountMetaSlice, len(metas))
	for i, meta := range metas {
		m := *meta
		out[i] = &m
	}
	return out
}
