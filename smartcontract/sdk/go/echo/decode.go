package echo

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

var (
	ErrEmptyInstruction       = errors.New("empty instruction data")
	ErrUnknownInstruction     = errors.New("unknown instruction")
	ErrInvalidInstructionData = errors.New("invalid instruction data")
)

// DecodedInstruction holds the fields of any echo program instruction. Only the fields
// carried by Type are set.
type DecodedInstruction struct {
	Type InstructionType

	// Echo, AuthorizedEcho, VendingMachineEcho
	Data []byte

	// InitializeAuthorizedEcho
	BufferSeed uint64

	// InitializeAuthorizedEcho, InitializeVendingMachineEcho
	BufferSize uint64

	// InitializeVendingMachineEcho
	Price uint64
}

// DecodeInstruction parses raw instruction data (discriminant included) into its fields.
func DecodeInstruction(data []byte) (*DecodedInstruction, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInstruction
	}

	typ := InstructionType(data[0])
	dec := bin.NewBorshDecoder(data[1:])
	out := &DecodedInstruction{Type: typ}

	var err error
	switch typ {
	case EchoInstructionIndex:
		out.Data = append([]byte{}, data[1:]...)
		return out, nil
	case InitializeAuthorizedEchoInstructionIndex:
		if out.BufferSeed, err = dec.ReadUint64(bin.LE); err != nil {
			return nil, fmt.Errorf("%w: buffer seed: %v", ErrInvalidInstructionData, err)
		}
		if out.BufferSize, err = dec.ReadUint64(bin.LE); err != nil {
			return nil, fmt.Errorf("%w: buffer size: %v", ErrInvalidInstructionData, err)
		}
	case AuthorizedEchoInstructionIndex, VendingMachineEchoInstructionIndex:
		if out.Data, err = decodeLengthPrefixed(dec); err != nil {
			return nil, err
		}
	case InitializeVendingMachineEchoInstructionIndex:
		if out.Price, err = dec.ReadUint64(bin.LE); err != nil {
			return nil, fmt.Errorf("%w: price: %v", ErrInvalidInstructionData, err)
		}
		if out.BufferSize, err = dec.ReadUint64(bin.LE); err != nil {
			return nil, fmt.Errorf("%w: buffer size: %v", ErrInvalidInstructionData, err)
		}
	default:
		return nil, fmt.Errorf("%w: discriminant %d", ErrUnknownInstruction, data[0])
	}

	if dec.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after %s", ErrInvalidInstructionData, dec.Remaining(), typ)
	}
	return out, nil
}

func decodeLengthPrefixed(dec *bin.Decoder) ([]byte, error) {
	length, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, fmt.Errorf("%w: data length: %v", ErrInvalidInstructionData, err)
	}
	if int(length) > dec.Remaining() {
		return nil, fmt.Errorf("%w: data length %d exceeds remaining %d bytes", ErrInvalidInstructionData, length, dec.Remaining())
	}
	if length == 0 {
		return []byte{}, nil
	}
	data, err := dec.ReadNBytes(int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrInvalidInstructionData, err)
	}
	return append([]byte{}, data...), nil
}
