package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/capture"
	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/notify"
	"github.com/SmitUplenchwar2687/macrokey/internal/server"
	"github.com/SmitUplenchwar2687/macrokey/internal/session"
)

// ErrNoPlatform is returned by commands that need the OS input hook or
// synthesizer when the binary was built without them.
var ErrNoPlatform = errors.New("input hook and synthesizer are not available in this build")

func newRunCmd(b Backend, g *globalOptions) *cobra.Command {
	var (
		addr   string
		settle time.Duration
		tee    string
	)
	lib := defaultLibraryOptions()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Capture global input and serve the control panel",
		Long: `Installs the global input hook and waits for hotkeys.

  F6   start or stop recording (a new recording replaces the old one)
  F7   start playback, or stop a running playback

The HTTP server exposes the same commands plus save/load and a live view:
  GET  /dashboard/             Control panel
  WS   /ws                     Recording status and live events
  POST /api/record/toggle      Same as F6
  POST /api/play/toggle        Same as F7
  POST /api/save, /api/load    {"path": "..."}`,
		Example: `  macrokey run
  macrokey run --addr 127.0.0.1:9090 --settle-delay 1s
  macrokey run --tee session.txt --library redis --redis-host localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if b.NewHook == nil || b.Synth == nil || b.Pointer == nil {
				return ErrNoPlatform
			}

			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("settle-delay") {
				settle = cfg.Playback.SettleDelay
			}

			store, err := lib.open(cmd, &cfg.Library)
			if err != nil {
				return fmt.Errorf("opening macro library: %w", err)
			}
			defer store.Close()

			sc := session.Config{
				Clock:       clock.NewRealClock(),
				Synth:       b.Synth,
				Pointer:     b.Pointer,
				Logger:      logger,
				SettleDelay: settle,
				Yield:       cfg.Playback.Yield,
			}
			if tee != "" {
				f, err := os.OpenFile(tee, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening tee file: %w", err)
				}
				defer f.Close()
				sc.Tee = f
			}

			hub := server.NewHub(logger)
			defer hub.Close()
			sc.Notifier = notify.Multi{hub, notify.NewLog(logger)}

			sess := session.New(sc)
			defer sess.Close()

			srv := server.New(addr, sess, sc.Clock, server.Options{
				Hub:     hub,
				Library: store,
				Logger:  logger,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n  macrokey\n")
			fmt.Fprintf(out, "  ────────────────────────────────────\n")
			fmt.Fprintf(out, "  Record:     %s\n", capture.RecordHotkey)
			fmt.Fprintf(out, "  Play/stop:  %s\n", capture.PlayHotkey)
			fmt.Fprintf(out, "  Dashboard:  http://%s/dashboard/\n", displayAddr(addr))
			fmt.Fprintf(out, "  WebSocket:  ws://%s/ws\n", displayAddr(addr))
			fmt.Fprintf(out, "  ────────────────────────────────────\n\n")

			// Graceful shutdown on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 2)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
			go func() {
				if err := b.NewHook(logger).Run(ctx, sess.HandleInput); err != nil && !errors.Is(err, context.Canceled) {
					errCh <- fmt.Errorf("input hook: %w", err)
				}
			}()

			var runErr error
			select {
			case runErr = <-errCh:
				stop()
			case <-ctx.Done():
				logger.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown", zap.Error(err))
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address for the control panel")
	cmd.Flags().DurationVar(&settle, "settle-delay", 500*time.Millisecond, "pause after playback before returning to idle")
	cmd.Flags().StringVar(&tee, "tee", "", "append every captured event to this file as it is recorded")
	lib.addFlags(cmd)

	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
