package echo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

var (
	ErrNoSigners          = errors.New("at least one signer is required")
	ErrSignatureNotFound  = errors.New("signature not found after wait")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrAirdropNotReceived = errors.New("airdrop not reflected in balance")
)

const (
	defaultWaitForVisibleTimeout = 3 * time.Second
	defaultPollInterval          = 500 * time.Millisecond
	defaultAirdropTimeout        = 30 * time.Second
)

// Account is an account as stored on the ledger.
type Account struct {
	Address  solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// Ledger is the subset of the ledger the echo client needs: account lookups and atomic
// submission of instruction batches.
type Ledger interface {
	// GetAccount returns ErrAccountNotFound when no account exists at address.
	GetAccount(ctx context.Context, address solana.PublicKey) (*Account, error)
	// Submit signs the instructions with signers, the first signer paying fees, and sends
	// them as a single transaction.
	Submit(ctx context.Context, instructions []solana.Instruction, signers []*solana.PrivateKey) (solana.Signature, error)
	// Confirm waits for the transaction to reach the ledger's commitment and returns an
	// error wrapping ErrTransactionFailed if it failed on chain.
	Confirm(ctx context.Context, sig solana.Signature) error
}

// RPCLedger implements Ledger on top of the Solana JSON-RPC API.
type RPCLedger struct {
	log                   *slog.Logger
	rpc                   RPCClient
	commitment            solanarpc.CommitmentType
	skipPreflight         bool
	waitForVisibleTimeout time.Duration
	pollInterval          time.Duration
	airdropTimeout        time.Duration
}

var _ Ledger = (*RPCLedger)(nil)

type LedgerOption func(*RPCLedger)

func WithCommitment(commitment solanarpc.CommitmentType) LedgerOption {
	return func(l *RPCLedger) {
		l.commitment = commitment
	}
}

// WithSkipPreflight disables transaction simulation before submission.
func WithSkipPreflight(skip bool) LedgerOption {
	return func(l *RPCLedger) {
		l.skipPreflight = skip
	}
}

func WithWaitForVisibleTimeout(timeout time.Duration) LedgerOption {
	return func(l *RPCLedger) {
		l.waitForVisibleTimeout = timeout
	}
}

func WithPollInterval(interval time.Duration) LedgerOption {
	return func(l *RPCLedger) {
		l.pollInterval = interval
	}
}

func WithAirdropTimeout(timeout time.Duration) LedgerOption {
	return func(l *RPCLedger) {
		l.airdropTimeout = timeout
	}
}

func NewRPCLedger(log *slog.Logger, rpc RPCClient, opts ...LedgerOption) *RPCLedger {
	l := &RPCLedger{
		log:                   log,
		rpc:                   rpc,
		commitment:            solanarpc.CommitmentConfirmed,
		waitForVisibleTimeout: defaultWaitForVisibleTimeout,
		pollInterval:          defaultPollInterval,
		airdropTimeout:        defaultAirdropTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RPCLedger) Commitment() solanarpc.CommitmentType {
	return l.commitment
}

func (l *RPCLedger) GetAccount(ctx context.Context, address solana.PublicKey) (*Account, error) {
	res, err := l.rpc.GetAccountInfoWithOpts(ctx, address, &solanarpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: l.commitment,
	})
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	if res == nil || res.Value == nil {
		return nil, ErrAccountNotFound
	}

	account := &Account{
		Address:  address,
		Owner:    res.Value.Owner,
		Lamports: res.Value.Lamports,
	}
	if res.Value.Data != nil {
		account.Data = res.Value.Data.GetBinary()
	}
	return account, nil
}

func (l *RPCLedger) Submit(ctx context.Context, instructions []solana.Instruction, signers []*solana.PrivateKey) (solana.Signature, error) {
	if len(signers) == 0 || signers[0] == nil {
		return solana.Signature{}, ErrNoSigners
	}
	payer := signers[0].PublicKey()

	// Get latest blockhash
	blockhash, err := l.getLatestBlockhashWithRetry(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	// Build transaction
	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build transaction: %w", err)
	}
	if tx == nil {
		return solana.Signature{}, errors.New("transaction build failed: nil result")
	}

	// Sign transaction
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for _, signer := range signers {
			if signer != nil && key.Equals(signer.PublicKey()) {
				return signer
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction (likely missing signer): %w", err)
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, errors.New("signed transaction appears malformed")
	}

	// Send transaction
	sig, err := l.rpc.SendTransactionWithOpts(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight:       l.skipPreflight,
		PreflightCommitment: l.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	l.log.Debug("--> Transaction sent", "sig", sig, "instructions", len(instructions), "payer", payer)

	return sig, nil
}

func (l *RPCLedger) Confirm(ctx context.Context, sig solana.Signature) error {
	if err := l.waitForSignatureVisible(ctx, sig, l.waitForVisibleTimeout); err != nil {
		if l.skipPreflight {
			return fmt.Errorf("transaction dropped or rejected before cluster saw it. make sure you have sufficient funds for the transaction: %w", err)
		}
		return fmt.Errorf("transaction dropped or rejected before cluster saw it: %w", err)
	}

	if err := l.waitForCommitment(ctx, sig); err != nil {
		return fmt.Errorf("failed to wait for transaction: %w", err)
	}

	res, err := l.rpc.GetTransaction(ctx, sig, &solanarpc.GetTransactionOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: transactionCommitment(l.commitment),
	})
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if res == nil || res.Meta == nil {
		return errors.New("transaction not found or missing metadata after confirmation")
	}
	if res.Meta.Err != nil {
		for _, msg := range res.Meta.LogMessages {
			if strings.Contains(msg, "already in use") {
				return fmt.Errorf("%w: %w: %v", ErrTransactionFailed, ErrAccountAlreadyInitialized, res.Meta.Err)
			}
		}
		return fmt.Errorf("%w: %v", ErrTransactionFailed, res.Meta.Err)
	}
	return nil
}

// RequestAirdrop asks the cluster faucet for lamports and waits until they show up in the
// account balance.
func (l *RPCLedger) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) error {
	before, err := l.rpc.GetBalance(ctx, account, l.commitment)
	if err != nil {
		return fmt.Errorf("failed to get balance: %w", err)
	}

	sig, err := l.rpc.RequestAirdrop(ctx, account, lamports, l.commitment)
	if err != nil {
		return fmt.Errorf("airdrop request failed: %w", err)
	}
	l.log.Debug("--> Airdrop requested", "sig", sig, "account", account, "lamports", lamports)

	if err := l.waitForSignatureVisible(ctx, sig, l.airdropTimeout); err != nil {
		return fmt.Errorf("airdrop dropped before cluster saw it: %w", err)
	}
	if err := l.waitForCommitment(ctx, sig); err != nil {
		return fmt.Errorf("failed to wait for airdrop: %w", err)
	}

	attempt := 0
	balance, err := backoff.Retry(ctx, func() (uint64, error) {
		attempt++
		res, err := l.rpc.GetBalance(ctx, account, l.commitment)
		if err != nil {
			return 0, err
		}
		if res.Value <= before.Value {
			if attempt > 1 {
				l.log.Debug("--> Airdrop not yet reflected in balance", "account", account, "attempt", attempt)
			}
			return 0, ErrAirdropNotReceived
		}
		return res.Value, nil
	}, backoff.WithBackOff(backoff.NewConstantBackOff(l.pollInterval)), backoff.WithMaxElapsedTime(l.airdropTimeout))
	if err != nil {
		return fmt.Errorf("failed to wait for airdrop balance: %w", err)
	}

	l.log.Debug("--> Airdrop received", "account", account, "balance", balance)
	return nil
}

func (l *RPCLedger) getLatestBlockhashWithRetry(ctx context.Context) (solana.Hash, error) {
	attempt := 0
	return backoff.Retry(ctx, func() (solana.Hash, error) {
		if attempt > 0 {
			l.log.Warn("Failed to get latest blockhash, retrying", "attempt", attempt)
		}
		attempt++
		res, err := l.rpc.GetLatestBlockhash(ctx, solanarpc.CommitmentFinalized)
		if err != nil {
			return solana.Hash{}, err
		}
		if res == nil || res.Value == nil {
			return solana.Hash{}, backoff.Permanent(errors.New("empty blockhash response"))
		}
		return res.Value.Blockhash, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(3))
}

func (l *RPCLedger) waitForSignatureVisible(ctx context.Context, sig solana.Signature, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := l.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return err
		}
		if len(resp.Value) > 0 && resp.Value[0] != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.pollInterval):
		}
	}
	return ErrSignatureNotFound
}

func (l *RPCLedger) waitForCommitment(ctx context.Context, sig solana.Signature) error {
	l.log.Debug("--> Waiting for transaction commitment", "sig", sig, "commitment", l.commitment)
	start := time.Now()
	for {
		statusResp, err := l.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return err
		}
		if len(statusResp.Value) == 0 {
			return errors.New("transaction not found")
		}
		if status := statusResp.Value[0]; status != nil && commitmentReached(status.ConfirmationStatus, l.commitment) {
			l.log.Debug("--> Transaction committed", "sig", sig, "status", status.ConfirmationStatus, "duration", time.Since(start))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.pollInterval):
		}
	}
}

// transactionCommitment returns the commitment to query getTransaction with, which
// rejects anything below confirmed.
func transactionCommitment(c solanarpc.CommitmentType) solanarpc.CommitmentType {
	if c == solanarpc.CommitmentFinalized {
		return c
	}
	return solanarpc.CommitmentConfirmed
}

func commitmentReached(status solanarpc.ConfirmationStatusType, want solanarpc.CommitmentType) bool {
	switch want {
	case solanarpc.CommitmentFinalized:
		return status == solanarpc.ConfirmationStatusFinalized
	case solanarpc.CommitmentConfirmed:
		return status == solanarpc.ConfirmationStatusConfirmed || status == solanarpc.ConfirmationStatusFinalized
	default:
		return status != ""
	}
}
