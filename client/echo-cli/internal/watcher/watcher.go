package watcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/solana-echo/smartcontract/sdk/go/echo"
)

const (
	watcherName = "buffer"
)

// BufferWatcher polls a single authorized buffer and reports content changes.
type BufferWatcher struct {
	log    *slog.Logger
	cfg    *Config
	buffer solana.PublicKey

	seen    bool
	exists  bool
	current []byte
}

func NewBufferWatcher(cfg *Config) (*BufferWatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buffer, _, err := cfg.Reader.BufferAddress(cfg.Authority, cfg.BufferSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive buffer address: %w", err)
	}
	return &BufferWatcher{
		log:    cfg.Logger.With("watcher", watcherName, "buffer", buffer),
		cfg:    cfg,
		buffer: buffer,
	}, nil
}

func (w *BufferWatcher) Name() string {
	return watcherName
}

func (w *BufferWatcher) Buffer() solana.PublicKey {
	return w.buffer
}

func (w *BufferWatcher) Run(ctx context.Context) error {
	ticker := w.cfg.Clock.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	err := w.Tick(ctx)
	if err != nil {
		w.log.Error("failed to tick", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("context done, stopping")
			return nil
		case <-ticker.Chan():
			err := w.Tick(ctx)
			if err != nil {
				w.log.Error("failed to tick", "error", err)
			}
		}
	}
}

func (w *BufferWatcher) Tick(ctx context.Context) error {
	w.log.Debug("ticking buffer")
	label := w.buffer.String()

	data, err := w.cfg.Reader.Read(ctx, w.cfg.Authority, w.cfg.BufferSeed)
	if err != nil {
		if errors.Is(err, echo.ErrAccountNotFound) {
			MetricBufferExists.WithLabelValues(label).Set(0)
			MetricBufferBytes.WithLabelValues(label).Set(0)
			if w.exists || !w.seen {
				w.log.Info("buffer account not found")
				w.record(false, nil)
			}
			return nil
		}
		MetricErrors.WithLabelValues(label, MetricErrorTypeReadBuffer).Inc()
		w.log.Warn("failed to read buffer", "error", err)
		return nil
	}

	MetricBufferExists.WithLabelValues(label).Set(1)
	MetricBufferBytes.WithLabelValues(label).Set(float64(len(data)))

	if w.seen && w.exists && bytes.Equal(w.current, data) {
		return nil
	}
	w.log.Info("buffer changed", "bytes", len(data), "data", fmt.Sprintf("%q", data))
	w.record(true, data)
	return nil
}

func (w *BufferWatcher) record(exists bool, data []byte) {
	change := Change{
		Buffer:   w.buffer,
		Previous: w.current,
		Current:  data,
		Exists:   exists,
	}
	if w.seen {
		MetricBufferChanges.WithLabelValues(w.buffer.String()).Inc()
	}
	w.seen = true
	w.exists = exists
	w.current = data
	if w.cfg.OnChange != nil {
		w.cfg.OnChange(change)
	}
}
