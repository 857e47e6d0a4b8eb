package echo

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

type InitializeAuthorizedEchoInstructionConfig struct {
	BufferPK    solana.PublicKey
	AuthorityPK solana.PublicKey
	BufferSeed  uint64
	BufferSize  uint64
}

func (c *InitializeAuthorizedEchoInstructionConfig) Validate() error {
	if c.BufferPK.IsZero() {
		return fmt.Errorf("buffer public key is required")
	}
	if c.AuthorityPK.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	return nil
}

func BuildInitializeAuthorizedEchoInstruction(
	programID solana.PublicKey,
	config InitializeAuthorizedEchoInstructionConfig,
) (*Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	// Serialize the instruction args.
	payload, err := borsh.Serialize(struct {
		BufferSeed uint64
		BufferSize uint64
	}{
		BufferSeed: config.BufferSeed,
		BufferSize: config.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize args: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(config.BufferPK).WRITE(),
		solana.Meta(config.AuthorityPK).SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}

	return newInstruction(programID, InitializeAuthorizedEchoInstructionIndex, payload, accounts), nil
}
