package echo

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type EchoInstructionConfig struct {
	BufferPK solana.PublicKey
	Data     []byte
}

func (c *EchoInstructionConfig) Validate() error {
	if c.BufferPK.IsZero() {
		return fmt.Errorf("buffer public key is required")
	}
	return nil
}

// BuildEchoInstruction builds an Echo instruction. The data is not length prefixed;
// its length is whatever remains of the instruction after the discriminant.
func BuildEchoInstruction(
	programID solana.PublicKey,
	config EchoInstructionConfig,
) (*Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(config.BufferPK).WRITE(),
	}

	return newInstruction(programID, EchoInstructionIndex, append([]byte(nil), config.Data...), accounts), nil
}
