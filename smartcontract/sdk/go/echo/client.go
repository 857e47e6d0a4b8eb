package echo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrAccountNotFound is returned when no account exists at the derived buffer address.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAddressInUseByDifferentLayout is returned when the derived buffer address holds an
	// account that was not created by the program for this authority and buffer seed.
	ErrAddressInUseByDifferentLayout = errors.New("address in use by an account with a different layout")

	ErrDataExceedsBuffer         = errors.New("data exceeds buffer capacity")
	ErrAccountAlreadyInitialized = errors.New("buffer account already initialized")
	ErrNoAuthority               = errors.New("authority is required")
)

type Client struct {
	log       *slog.Logger
	ledger    Ledger
	programID solana.PublicKey
}

func New(log *slog.Logger, ledger Ledger, programID solana.PublicKey) *Client {
	return &Client{
		log:       log,
		ledger:    ledger,
		programID: programID,
	}
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// BufferAddress returns the derived buffer address and bump for authority and bufferSeed.
func (c *Client) BufferAddress(authority solana.PublicKey, bufferSeed uint64) (solana.PublicKey, uint8, error) {
	return DeriveAuthorizedBufferAddress(c.programID, authority, bufferSeed)
}

// Write stores data in the buffer identified by the authority and bufferSeed. When the
// buffer account does not exist yet, the initialization instruction is prepended so that
// creation and the write land in the same transaction.
//
// The buffer is sized by the first write. A later, shorter write leaves the capacity
// unchanged and the program zero-fills the bytes past data, so Read returns data followed
// by zeros up to the buffer size. Data longer than the buffer fails with ErrDataExceedsBuffer.
func (c *Client) Write(ctx context.Context, authority *solana.PrivateKey, bufferSeed uint64, data []byte) (solana.Signature, error) {
	if authority == nil {
		return solana.Signature{}, ErrNoAuthority
	}
	authorityPK := authority.PublicKey()

	bufferPK, bump, err := c.BufferAddress(authorityPK, bufferSeed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to derive buffer address: %w", err)
	}

	needsInit := false
	account, err := c.ledger.GetAccount(ctx, bufferPK)
	if err != nil {
		if !errors.Is(err, ErrAccountNotFound) {
			return solana.Signature{}, fmt.Errorf("failed to get buffer account: %w", err)
		}
		needsInit = true
	} else if err := c.checkBufferAccount(account, bump, bufferSeed, len(data)); err != nil {
		return solana.Signature{}, err
	}

	instructions := make([]solana.Instruction, 0, 2)
	if needsInit {
		c.log.Debug("Buffer account not found, initializing", "buffer", bufferPK, "bufferSeed", bufferSeed, "bufferSize", len(data))
		initIx, err := BuildInitializeAuthorizedEchoInstruction(c.programID, InitializeAuthorizedEchoInstructionConfig{
			BufferPK:    bufferPK,
			AuthorityPK: authorityPK,
			BufferSeed:  bufferSeed,
			BufferSize:  uint64(len(data)),
		})
		if err != nil {
			return solana.Signature{}, fmt.Errorf("failed to build initialize instruction: %w", err)
		}
		instructions = append(instructions, initIx)
	}

	echoIx, err := BuildAuthorizedEchoInstruction(c.programID, AuthorizedEchoInstructionConfig{
		BufferPK:    bufferPK,
		AuthorityPK: authorityPK,
		Data:        data,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build authorized echo instruction: %w", err)
	}
	instructions = append(instructions, echoIx)

	sig, err := c.ledger.Submit(ctx, instructions, []*solana.PrivateKey{authority})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to submit transaction: %w", err)
	}
	if err := c.ledger.Confirm(ctx, sig); err != nil {
		return sig, fmt.Errorf("failed to confirm transaction: %w", err)
	}

	c.log.Info("Wrote to buffer", "sig", sig, "buffer", bufferPK, "bytes", len(data), "initialized", needsInit)
	return sig, nil
}

// Read returns the payload stored in the buffer identified by authority and bufferSeed.
// The payload spans the whole buffer, including any zero padding left by shorter writes.
func (c *Client) Read(ctx context.Context, authority solana.PublicKey, bufferSeed uint64) ([]byte, error) {
	bufferPK, _, err := c.BufferAddress(authority, bufferSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive buffer address: %w", err)
	}

	account, err := c.ledger.GetAccount(ctx, bufferPK)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get buffer account: %w", err)
	}

	data, err := ParseAccountData(account.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse buffer account: %w", err)
	}
	return data, nil
}

// Echo submits an unauthenticated Echo instruction against an existing buffer account,
// with signer paying the fees.
func (c *Client) Echo(ctx context.Context, signer *solana.PrivateKey, buffer solana.PublicKey, data []byte) (solana.Signature, error) {
	if signer == nil {
		return solana.Signature{}, ErrNoSigners
	}

	ix, err := BuildEchoInstruction(c.programID, EchoInstructionConfig{
		BufferPK: buffer,
		Data:     data,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build echo instruction: %w", err)
	}

	sig, err := c.ledger.Submit(ctx, []solana.Instruction{ix}, []*solana.PrivateKey{signer})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to submit transaction: %w", err)
	}
	if err := c.ledger.Confirm(ctx, sig); err != nil {
		return sig, fmt.Errorf("failed to confirm transaction: %w", err)
	}

	c.log.Info("Echoed to buffer", "sig", sig, "buffer", buffer, "bytes", len(data))
	return sig, nil
}

func (c *Client) checkBufferAccount(account *Account, bump uint8, bufferSeed uint64, dataLen int) error {
	if !account.Owner.Equals(c.programID) {
		return fmt.Errorf("%w: owner is %s", ErrAddressInUseByDifferentLayout, account.Owner)
	}
	var header AuthorizedBufferHeader
	if err := header.Deserialize(account.Data); err != nil {
		return fmt.Errorf("%w: %w", ErrAddressInUseByDifferentLayout, err)
	}
	if header.BumpSeed != bump || header.BufferSeed != bufferSeed {
		return fmt.Errorf("%w: header has bump %d and buffer seed %d", ErrAddressInUseByDifferentLayout, header.BumpSeed, header.BufferSeed)
	}
	if capacity := len(account.Data) - AuthorizedBufferHeaderSize; dataLen > capacity {
		return fmt.Errorf("%w: %d bytes, capacity %d", ErrDataExceedsBuffer, dataLen, capacity)
	}
	return nil
}
