package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/playback"
)

func newPlayCmd(b Backend, g *globalOptions) *cobra.Command {
	var (
		file       string
		delay      time.Duration
		speed      float64
		dryRun     bool
		outputJSON bool
		kinds      []string
		from       float32
		to         float32
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a macro file without the hotkey listener",
		Long: `Plays a saved macro once and exits.

Events are replayed at their recorded offsets. Button events move the
pointer to the recorded position first. Malformed lines are skipped with a
warning. Press Ctrl-C to stop early.

Kinds: KeyPress, KeyRelease, ButtonPress, ButtonRelease, Wheel`,
		Example: `  macrokey play --file macro.txt
  macrokey play --file macro.txt --delay 3s --speed 2
  macrokey play --file macro.txt --kinds KeyPress,KeyRelease --from 1.5 --to 4
  macrokey play --file macro.txt --dry-run --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			filterKinds, err := parseKinds(kinds)
			if err != nil {
				return err
			}

			synth := b.Synth
			if !dryRun && synth == nil {
				return ErrNoPlatform
			}

			cfg, logger, err := g.load(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if dryRun {
				synth = playback.LogSynthesizer{Logger: logger}
			}

			events, skipped, err := codec.LoadFile(file)
			if err != nil {
				return err
			}
			for _, s := range skipped {
				logger.Warn("skipped malformed line",
					zap.Int("line", s.Line),
					zap.String("text", s.Text),
					zap.Error(s.Reason))
			}

			filter := &playback.Filter{Kinds: filterKinds, From: from, To: to}
			events = filter.Apply(events)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			clk := clock.NewRealClock()
			if delay > 0 {
				select {
				case <-clk.After(delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			out := cmd.OutOrStdout()
			if !outputJSON {
				fmt.Fprintf(out, "Playing %d events from %s...\n\n", len(events), file)
			}

			player := playback.New(clk, synth, logger, playback.Options{Speed: speed, Yield: cfg.Playback.Yield})
			var results []playback.Result
			summary, err := player.Run(ctx, events, func(res playback.Result) {
				if outputJSON {
					results = append(results, res)
					return
				}
				status := "OK  "
				if res.Err != nil {
					status = "FAIL"
				}
				fmt.Fprintf(out, "  [%s] %8.3fs %s %s\n", status, res.Event.Offset, res.Event.Label(), res.Event.Value)
			})
			if err != nil {
				return err
			}

			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"results": results,
					"summary": summary,
					"skipped": len(skipped),
				})
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "--- Playback Summary ---")
			fmt.Fprintf(out, "  Total events:   %d\n", summary.Total)
			fmt.Fprintf(out, "  Played:         %d\n", summary.Played)
			fmt.Fprintf(out, "  Failed:         %d\n", summary.Failed)
			fmt.Fprintf(out, "  Skipped lines:  %d\n", len(skipped))
			fmt.Fprintf(out, "  Recorded span:  %s\n", summary.Duration)
			fmt.Fprintf(out, "  Wall time:      %s\n", summary.WallDuration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to macro file (required)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "wait before starting, to focus the target window")
	cmd.Flags().Float64Var(&speed, "speed", 1, "playback speed (1=recorded timing, 2=twice as fast)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log events instead of injecting them")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output results as JSON")
	cmd.Flags().StringSliceVar(&kinds, "kinds", nil, "only play these event kinds (comma-separated)")
	cmd.Flags().Float32Var(&from, "from", 0, "skip events before this offset in seconds")
	cmd.Flags().Float32Var(&to, "to", 0, "skip events after this offset in seconds")

	return cmd
}

// parseKinds maps kind names such as "KeyPress" or "key-press" to event
// kinds. Mouse moves are never stored, so they are not accepted.
func parseKinds(names []string) ([]event.Kind, error) {
	all := []event.Kind{
		event.KindKeyPress,
		event.KindKeyRelease,
		event.KindButtonPress,
		event.KindButtonRelease,
		event.KindWheel,
	}

	var out []event.Kind
	for _, name := range names {
		norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
		found := false
		for _, k := range all {
			if strings.ToLower(k.String()) == norm {
				out = append(out, k)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown event kind %q", name)
		}
	}
	return out, nil
}
