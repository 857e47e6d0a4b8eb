package echo

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

type AuthorizedEchoInstructionConfig struct {
	BufferPK    solana.PublicKey
	AuthorityPK solana.PublicKey
	Data        []byte
}

func (c *AuthorizedEchoInstructionConfig) Validate() error {
	if c.BufferPK.IsZero() {
		return fmt.Errorf("buffer public key is required")
	}
	if c.AuthorityPK.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	return nil
}

// BuildAuthorizedEchoInstruction builds an AuthorizedEcho instruction. Unlike Echo, the
// data is prefixed with its length as a u32.
func BuildAuthorizedEchoInstruction(
	programID solana.PublicKey,
	config AuthorizedEchoInstructionConfig,
) (*Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	payload, err := serializeLengthPrefixed(config.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize args: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(config.BufferPK).WRITE(),
		solana.Meta(config.AuthorityPK).SIGNER(),
	}

	return newInstruction(programID, AuthorizedEchoInstructionIndex, payload, accounts), nil
}

// serializeLengthPrefixed encodes data as a borsh Vec<u8>: a u32 LE length followed by the bytes.
func serializeLengthPrefixed(data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	return borsh.Serialize(struct {
		Data []byte
	}{
		Data: data,
	})
}
