package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/metrics"
	"github.com/malbeclabs/solana-echo/client/echo-cli/internal/watcher"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const (
	defaultWatchInterval = 5 * time.Second
)

type WatchCmd struct {
	info BuildInfo
}

func NewWatchCmd(info BuildInfo) *WatchCmd {
	return &WatchCmd{info: info}
}

func (c *WatchCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <program-id>",
		Short: "Poll the authority's buffer and log every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settingsFromCommand(cmd)
			if err != nil {
				return err
			}
			programID, err := parseProgramID(args[0])
			if err != nil {
				return err
			}
			bufferSeed, err := cmd.Flags().GetUint64("buffer-seed")
			if err != nil {
				return fmt.Errorf("failed to get buffer-seed flag: %w", err)
			}
			interval, err := cmd.Flags().GetDuration("interval")
			if err != nil {
				return fmt.Errorf("failed to get interval flag: %w", err)
			}
			metricsAddr, err := cmd.Flags().GetString("metrics-addr")
			if err != nil {
				return fmt.Errorf("failed to get metrics-addr flag: %w", err)
			}
			authority, err := authorityPublicKey(cmd, s)
			if err != nil {
				return err
			}

			log := newLogger(s.Verbose)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			// Set up prometheus metrics server if enabled.
			if metricsAddr != "" {
				metrics.BuildInfo.WithLabelValues(c.info.Version, c.info.Commit, c.info.Date).Set(1)
				listener, err := net.Listen("tcp", metricsAddr)
				if err != nil {
					return fmt.Errorf("failed to start prometheus metrics server listener: %w", err)
				}
				log.Info("Prometheus metrics server listening", "address", listener.Addr().String())
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
						log.Error("Failed to serve prometheus metrics", "error", err)
					}
				}()
				defer server.Close()
			}

			client := newInstrumentedClient(log, newRPCLedger(log, s), programID)
			w, err := watcher.NewBufferWatcher(&watcher.Config{
				Logger:     log,
				Reader:     client,
				Authority:  authority,
				BufferSeed: bufferSeed,
				Interval:   interval,
				Clock:      clockwork.NewRealClock(),
				OnChange: func(change watcher.Change) {
					if !change.Exists {
						fmt.Fprintf(cmd.OutOrStdout(), "Failed to get account with address '%s'\n", change.Buffer)
						return
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Data in the buffer: %q\n", change.Current)
				},
			})
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}

			log.Info("Watching buffer", "buffer", w.Buffer(), "interval", interval)
			return w.Run(ctx)
		},
	}

	addBufferSeedFlag(cmd)
	addAuthorityFlag(cmd)
	cmd.Flags().Duration("interval", defaultWatchInterval, "Polling interval")
	cmd.Flags().String("metrics-addr", "", "Address to serve prometheus metrics on (disabled if empty)")

	return cmd
}
