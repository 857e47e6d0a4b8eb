package echo

// InstructionType is the leading discriminant byte of every echo program instruction.
type InstructionType uint8

const (
	// EchoInstructionIndex copies data into an existing buffer account.
	EchoInstructionIndex InstructionType = 0
	// InitializeAuthorizedEchoInstructionIndex creates an authority-gated buffer PDA.
	InitializeAuthorizedEchoInstructionIndex InstructionType = 1
	// AuthorizedEchoInstructionIndex writes data into an authority-gated buffer.
	AuthorizedEchoInstructionIndex InstructionType = 2
	// InitializeVendingMachineEchoInstructionIndex creates a pay-to-write buffer.
	InitializeVendingMachineEchoInstructionIndex InstructionType = 3
	// VendingMachineEchoInstructionIndex writes data into a pay-to-write buffer.
	VendingMachineEchoInstructionIndex InstructionType = 4
)

func (t InstructionType) String() string {
	switch t {
	case EchoInstructionIndex:
		return "Echo"
	case InitializeAuthorizedEchoInstructionIndex:
		return "InitializeAuthorizedEcho"
	case AuthorizedEchoInstructionIndex:
		return "AuthorizedEcho"
	case InitializeVendingMachineEchoInstructionIndex:
		return "InitializeVendingMachineEcho"
	case VendingMachineEchoInstructionIndex:
		return "VendingMachineEcho"
	default:
		return "Unknown"
	}
}

// PDA seeds for the echo program
const (
	// Prefix for authority-gated buffer PDAs
	AuthorityBufferSeedPrefix = "authority"
)

const (
	// AuthorizedBufferHeaderSize is the size of the bump seed (u8) and buffer seed (u64)
	// that prefix every authorized buffer account.
	AuthorizedBufferHeaderSize = 1 + 8

	// DefaultBufferSeed is the buffer seed used when none is given.
	DefaultBufferSeed uint64 = 123907

	// Solana runtime limits on PDA seeds, bump included.
	MaxSeeds      = 16
	MaxSeedLength = 32
)
