package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/library"
)

func newLibraryCmd(g *globalOptions) *cobra.Command {
	lib := defaultLibraryOptions()

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage named macros in a shared library",
		Long: `Stores macros by name so they can be shared between machines.

The memory backend only lives as long as the process, so these commands
are useful with --library redis.`,
		Example: `  macrokey library push login --file login.txt --library redis
  macrokey library list --library redis --redis-host cache:6379
  macrokey library pull login --output login.txt --library redis`,
	}
	lib.addFlags(cmd)

	// withStore opens the configured store for the duration of fn.
	withStore := func(cmd *cobra.Command, fn func(ctx context.Context, store library.Store, logger *zap.Logger) error) error {
		cfg, logger, err := g.load(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := lib.open(cmd, &cfg.Library)
		if err != nil {
			return fmt.Errorf("opening macro library: %w", err)
		}
		defer store.Close()
		return fn(cmd.Context(), store, logger)
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored macro names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store library.Store, _ *zap.Logger) error {
				names, err := store.List(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	var file string
	pushCmd := &cobra.Command{
		Use:   "push NAME",
		Short: "Store a macro file under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			return withStore(cmd, func(ctx context.Context, store library.Store, logger *zap.Logger) error {
				n, err := pushMacro(ctx, store, args[0], file, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %d events as %q\n", n, args[0])
				return nil
			})
		},
	}
	pushCmd.Flags().StringVar(&file, "file", "", "macro file to store (required)")

	var output string
	pullCmd := &cobra.Command{
		Use:   "pull NAME",
		Short: "Write the macro stored under NAME to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = args[0] + ".txt"
			}
			return withStore(cmd, func(ctx context.Context, store library.Store, _ *zap.Logger) error {
				if err := pullMacro(ctx, store, args[0], path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %q to %s\n", args[0], path)
				return nil
			})
		},
	}
	pullCmd.Flags().StringVar(&output, "output", "", "output file path (default NAME.txt)")

	rmCmd := &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete the macro stored under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store library.Store, _ *zap.Logger) error {
				return store.Delete(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(listCmd, pushCmd, pullCmd, rmCmd)
	return cmd
}

// pushMacro decodes the file at path and stores its events re-encoded, so
// malformed lines never reach the library.
func pushMacro(ctx context.Context, store library.Store, name, path string, logger *zap.Logger) (int, error) {
	if err := library.ValidateName(name); err != nil {
		return 0, err
	}
	events, skipped, err := codec.LoadFile(path)
	if err != nil {
		return 0, err
	}
	for _, s := range skipped {
		logger.Warn("skipped malformed line", zap.Int("line", s.Line), zap.Error(s.Reason))
	}

	var buf bytes.Buffer
	if _, err := codec.Encode(&buf, events); err != nil {
		return 0, err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return 0, err
	}
	return len(events), nil
}

func pullMacro(ctx context.Context, store library.Store, name, path string) error {
	data, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing macro file: %w", err)
	}
	return nil
}
