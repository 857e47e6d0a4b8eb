package echo

import (
	"github.com/gagliardetto/solana-go"
)

// Instruction is an encoded echo program instruction. It is immutable once built and
// implements solana.Instruction.
type Instruction struct {
	programID solana.PublicKey
	typ       InstructionType
	payload   []byte
	accounts  solana.AccountMetaSlice
}

var _ solana.Instruction = (*Instruction)(nil)

func newInstruction(programID solana.PublicKey, typ InstructionType, payload []byte, accounts solana.AccountMetaSlice) *Instruction {
	return &Instruction{
		programID: programID,
		typ:       typ,
		payload:   payload,
		accounts:  accounts,
	}
}

func (i *Instruction) ProgramID() solana.PublicKey {
	return i.programID
}

// Type returns the discriminant of the instruction.
func (i *Instruction) Type() InstructionType {
	return i.typ
}

// Payload returns a copy of the bytes that follow the discriminant.
func (i *Instruction) Payload() []byte {
	return append([]byte(nil), i.payload...)
}

// Accounts returns copies of the account metas in the order the program expects them.
func (i *Instruction) Accounts() []*solana.AccountMeta {
	accounts := make([]*solana.AccountMeta, len(i.accounts))
	for idx, meta := range i.accounts {
		m := *meta
		accounts[idx] = &m
	}
	return accounts
}

// Data returns the wire encoding: the discriminant byte followed by the payload.
func (i *Instruction) Data() ([]byte, error) {
	data := make([]byte, 0, 1+len(i.payload))
	data = append(data, byte(i.typ))
	return append(data, i.payload...), nil
}
