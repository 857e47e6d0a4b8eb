package echo_test

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/lmittmann/tint"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
)

var (
	log *slog.Logger
)

// TestMain sets up the test environment with a global logger.
func TestMain(m *testing.M) {
	flag.Parse()
	verbose := false
	if vFlag := flag.Lookup("test.v"); vFlag != nil && vFlag.Value.String() == "true" {
		verbose = true
	}
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	log = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.RFC3339,
		AddSource:  true,
	}))

	os.Exit(m.Run())
}

type mockRPCClient struct {
	echo.RPCClient

	GetAccountInfoWithOptsFunc  func(context.Context, solana.PublicKey, *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error)
	GetLatestBlockhashFunc      func(context.Context, solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error)
	SendTransactionWithOptsFunc func(context.Context, *solana.Transaction, solanarpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatusesFunc    func(context.Context, bool, ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error)
	GetTransactionFunc          func(context.Context, solana.Signature, *solanarpc.GetTransactionOpts) (*solanarpc.GetTransactionResult, error)
	RequestAirdropFunc          func(context.Context, solana.PublicKey, uint64, solanarpc.CommitmentType) (solana.Signature, error)
	GetBalanceFunc              func(context.Context, solana.PublicKey, solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error)
}

func (m *mockRPCClient) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *solanarpc.GetAccountInfoOpts) (*solanarpc.GetAccountInfoResult, error) {
	return m.GetAccountInfoWithOptsFunc(ctx, account, opts)
}

func (m *mockRPCClient) GetLatestBlockhash(ctx context.Context, ct solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
	return m.GetLatestBlockhashFunc(ctx, ct)
}

func (m *mockRPCClient) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	return m.SendTransactionWithOptsFunc(ctx, tx, opts)
}

func (m *mockRPCClient) GetSignatureStatuses(ctx context.Context, search bool, sigs ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
	return m.GetSignatureStatusesFunc(ctx, search, sigs...)
}

func (m *mockRPCClient) GetTransaction(ctx context.Context, sig solana.Signature, opts *solanarpc.GetTransactionOpts) (*solanarpc.GetTransactionResult, error) {
	return m.GetTransactionFunc(ctx, sig, opts)
}

func (m *mockRPCClient) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment solanarpc.CommitmentType) (solana.Signature, error) {
	return m.RequestAirdropFunc(ctx, account, lamports, commitment)
}

func (m *mockRPCClient) GetBalance(ctx context.Context, account solana.PublicKey, commitment solanarpc.CommitmentType) (*solanarpc.GetBalanceResult, error) {
	return m.GetBalanceFunc(ctx, account, commitment)
}

// fakeLedger is an in-memory ledger that runs the echo program's authorized buffer
// instructions against a map of accounts. Each submission is applied atomically.
type fakeLedger struct {
	programID solana.PublicKey
	accounts  map[solana.PublicKey]*echo.Account
	results   map[solana.Signature]error

	// submitted holds the instruction types of every submission, in order.
	submitted [][]echo.InstructionType

	getAccountErr error
	submitErr     error
}

var _ echo.Ledger = (*fakeLedger)(nil)

func newFakeLedger(programID solana.PublicKey) *fakeLedger {
	return &fakeLedger{
		programID: programID,
		accounts:  make(map[solana.PublicKey]*echo.Account),
		results:   make(map[solana.Signature]error),
	}
}

func (l *fakeLedger) GetAccount(_ context.Context, address solana.PublicKey) (*echo.Account, error) {
	if l.getAccountErr != nil {
		return nil, l.getAccountErr
	}
	account, ok := l.accounts[address]
	if !ok {
		return nil, echo.ErrAccountNotFound
	}
	out := *account
	out.Data = append([]byte(nil), account.Data...)
	return &out, nil
}

func (l *fakeLedger) Submit(_ context.Context, instructions []solana.Instruction, signers []*solana.PrivateKey) (solana.Signature, error) {
	if l.submitErr != nil {
		return solana.Signature{}, l.submitErr
	}
	if len(signers) == 0 {
		return solana.Signature{}, echo.ErrNoSigners
	}

	var sig solana.Signature
	binary.LittleEndian.PutUint64(sig[:], uint64(len(l.submitted)+1))

	signed := make(map[solana.PublicKey]bool, len(signers))
	for _, signer := range signers {
		signed[signer.PublicKey()] = true
	}

	types := make([]echo.InstructionType, 0, len(instructions))
	staged := make(map[solana.PublicKey]*echo.Account, len(l.accounts))
	for k, v := range l.accounts {
		staged[k] = v
	}
	var execErr error
	for _, ix := range instructions {
		data, err := ix.Data()
		if err != nil {
			return solana.Signature{}, err
		}
		decoded, err := echo.DecodeInstruction(data)
		if err != nil {
			return solana.Signature{}, err
		}
		types = append(types, decoded.Type)
		if execErr == nil {
			execErr = l.execute(staged, signed, ix.Accounts(), decoded)
		}
	}
	l.submitted = append(l.submitted, types)

	if execErr != nil {
		l.results[sig] = fmt.Errorf("%w: %w", echo.ErrTransactionFailed, execErr)
	} else {
		l.accounts = staged
		l.results[sig] = nil
	}
	return sig, nil
}

func (l *fakeLedger) Confirm(_ context.Context, sig solana.Signature) error {
	err, ok := l.results[sig]
	if !ok {
		return echo.ErrSignatureNotFound
	}
	return err
}

func (l *fakeLedger) initCount() int {
	n := 0
	for _, types := range l.submitted {
		for _, typ := range types {
			if typ == echo.InitializeAuthorizedEchoInstructionIndex {
				n++
			}
		}
	}
	return n
}

func (l *fakeLedger) execute(accounts map[solana.PublicKey]*echo.Account, signed map[solana.PublicKey]bool, metas []*solana.AccountMeta, ix *echo.DecodedInstruction) error {
	switch ix.Type {
	case echo.InitializeAuthorizedEchoInstructionIndex:
		buffer, authority := metas[0].PublicKey, metas[1].PublicKey
		if !signed[authority] {
			return fmt.Errorf("missing authority signature")
		}
		address, bump, err := echo.DeriveAuthorizedBufferAddress(l.programID, authority, ix.BufferSeed)
		if err != nil {
			return err
		}
		if !address.Equals(buffer) {
			return fmt.Errorf("authority key doesn't match")
		}
		if _, ok := accounts[buffer]; ok {
			return echo.ErrAccountAlreadyInitialized
		}
		raw, err := (&echo.AuthorizedBuffer{
			AuthorizedBufferHeader: echo.AuthorizedBufferHeader{BumpSeed: bump, BufferSeed: ix.BufferSeed},
			Data:                   make([]byte, ix.BufferSize),
		}).Serialize()
		if err != nil {
			return err
		}
		accounts[buffer] = &echo.Account{Address: buffer, Owner: l.programID, Lamports: 1, Data: raw}
	case echo.AuthorizedEchoInstructionIndex:
		buffer, authority := metas[0].PublicKey, metas[1].PublicKey
		if !signed[authority] {
			return fmt.Errorf("missing authority signature")
		}
		account, ok := accounts[buffer]
		if !ok {
			return fmt.Errorf("account %s not found", buffer)
		}
		b, err := echo.DeserializeAuthorizedBuffer(account.Data)
		if err != nil {
			return err
		}
		address, bump, err := echo.DeriveAuthorizedBufferAddress(l.programID, authority, b.BufferSeed)
		if err != nil {
			return err
		}
		if bump != b.BumpSeed || !address.Equals(buffer) {
			return fmt.Errorf("invalid buffer account")
		}
		accounts[buffer] = withPayload(account, echo.AuthorizedBufferHeaderSize, ix.Data)
	case echo.EchoInstructionIndex:
		account, ok := accounts[metas[0].PublicKey]
		if !ok {
			return fmt.Errorf("account %s not found", metas[0].PublicKey)
		}
		accounts[metas[0].PublicKey] = withPayload(account, 0, ix.Data)
	default:
		return fmt.Errorf("%s not implemented", ix.Type)
	}
	return nil
}

// withPayload copies data into the account from offset, truncating to capacity and
// zeroing the rest.
func withPayload(account *echo.Account, offset int, data []byte) *echo.Account {
	out := *account
	out.Data = append([]byte(nil), account.Data...)
	buffer := out.Data[offset:]
	n := copy(buffer, data)
	clear(buffer[n:])
	return &out
}
