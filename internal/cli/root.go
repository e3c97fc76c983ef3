package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/capture"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
	"github.com/SmitUplenchwar2687/macrokey/internal/playback"
)

// InputSource delivers system-wide input events until ctx is done.
type InputSource interface {
	Run(ctx context.Context, handle func(event.Input)) error
}

// Backend binds commands to the operating system. Commands that need a
// missing piece fail with an error instead of panicking, so the command
// tree can be built and tested without a display.
type Backend struct {
	NewHook func(logger *zap.Logger) InputSource
	Synth   playback.Synthesizer
	Pointer capture.Pointer
}

// NewRootCmd creates the root macrokey command.
func NewRootCmd(b Backend) *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "macrokey",
		Short: "Record and replay global keyboard and mouse macros",
		Long: `macrokey records system-wide keyboard and mouse input with its timing
and plays it back later. F6 toggles recording, F7 toggles playback.

Macros are stored as plain text, one event per line:
  Key Press|||KeyA|||0.1
  Button Press Left|||100, 200|||0.5`,
		SilenceUsage: true,
	}
	g.addFlags(root)

	root.AddCommand(
		newRunCmd(b, g),
		newPlayCmd(b, g),
		newInspectCmd(),
		newGenerateCmd(),
		newLibraryCmd(g),
	)

	return root
}
