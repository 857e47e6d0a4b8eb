package watcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
)

type BufferReader interface {
	Read(ctx context.Context, authority solana.PublicKey, bufferSeed uint64) ([]byte, error)
	BufferAddress(authority solana.PublicKey, bufferSeed uint64) (solana.PublicKey, uint8, error)
}

// Change describes a buffer whose content differs from the previous tick.
type Change struct {
	Buffer   solana.PublicKey
	Previous []byte
	Current  []byte
	Exists   bool
}

type Config struct {
	Logger     *slog.Logger
	Reader     BufferReader
	Authority  solana.PublicKey
	BufferSeed uint64
	Interval   time.Duration
	Clock      clockwork.Clock

	// OnChange is called from the watcher goroutine after every observed change.
	OnChange func(Change)
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Reader == nil {
		return errors.New("reader is required")
	}
	if c.Authority.IsZero() {
		return errors.New("authority is required")
	}
	if c.Interval <= 0 {
		return errors.New("interval must be greater than 0")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}
