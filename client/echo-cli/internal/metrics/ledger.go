package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
)

// InstrumentedLedger records request counts and latencies for every call to the
// wrapped ledger.
type InstrumentedLedger struct {
	ledger echo.Ledger
}

var _ echo.Ledger = (*InstrumentedLedger)(nil)

func NewInstrumentedLedger(ledger echo.Ledger) *InstrumentedLedger {
	return &InstrumentedLedger{ledger: ledger}
}

func (l *InstrumentedLedger) GetAccount(ctx context.Context, address solana.PublicKey) (*echo.Account, error) {
	start := time.Now()
	account, err := l.ledger.GetAccount(ctx, address)
	observe(MethodGetAccount, ErrorTypeGetAccount, start, err)
	return account, err
}

func (l *InstrumentedLedger) Submit(ctx context.Context, instructions []solana.Instruction, signers []*solana.PrivateKey) (solana.Signature, error) {
	start := time.Now()
	sig, err := l.ledger.Submit(ctx, instructions, signers)
	observe(MethodSubmit, ErrorTypeSubmit, start, err)
	return sig, err
}

func (l *InstrumentedLedger) Confirm(ctx context.Context, sig solana.Signature) error {
	start := time.Now()
	err := l.ledger.Confirm(ctx, sig)
	observe(MethodConfirm, ErrorTypeConfirm, start, err)
	return err
}

func observe(method, errorType string, start time.Time, err error) {
	LedgerRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		LedgerRequests.WithLabelValues(method, StatusOK).Inc()
	case errors.Is(err, echo.ErrAccountNotFound):
		LedgerRequests.WithLabelValues(method, StatusNotFound).Inc()
	default:
		LedgerRequests.WithLabelValues(method, StatusError).Inc()
		Errors.WithLabelValues(errorType).Inc()
	}
}
