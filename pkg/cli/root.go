package cli

import (
	"github.com/spf13/cobra"

	internalcli "github.com/SmitUplenchwar2687/macrokey/internal/cli"
)

// Backend binds commands to the operating system.
type Backend = internalcli.Backend

// InputSource delivers system-wide input events.
type InputSource = internalcli.InputSource

// ErrNoPlatform is returned by commands that need a missing Backend piece.
var ErrNoPlatform = internalcli.ErrNoPlatform

// NewRootCmd creates the public macrokey root command for embedding.
func NewRootCmd(b Backend) *cobra.Command {
	return internalcli.NewRootCmd(b)
}
