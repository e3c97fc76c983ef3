package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

type inspectReport struct {
	Events  []event.Recorded `json:"events"`
	Skipped []skippedJSON    `json:"skipped"`
}

type skippedJSON struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func newInspectCmd() *cobra.Command {
	var (
		file       string
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the events in a macro file",
		Long: `Decodes a macro file and prints every event with its offset.
Lines that cannot be decoded are reported with the reason.`,
		Example: `  macrokey inspect --file macro.txt
  macrokey inspect --file macro.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			events, skipped, err := codec.LoadFile(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				report := inspectReport{Events: events, Skipped: make([]skippedJSON, 0, len(skipped))}
				if report.Events == nil {
					report.Events = []event.Recorded{}
				}
				for _, s := range skipped {
					report.Skipped = append(report.Skipped, skippedJSON{Line: s.Line, Text: s.Text, Reason: s.Reason.Error()})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tOFFSET\tKIND\tVALUE")
			for i, rec := range events {
				fmt.Fprintf(tw, "%d\t%.3fs\t%s\t%s\n", i+1, rec.Offset, rec.Label(), rec.Value)
			}
			tw.Flush()

			fmt.Fprintf(out, "\n%d events", len(events))
			if len(events) > 0 {
				fmt.Fprintf(out, " over %.3fs", events[len(events)-1].Offset)
			}
			fmt.Fprintln(out)

			if len(skipped) > 0 {
				fmt.Fprintf(out, "\n%d lines skipped:\n", len(skipped))
				for _, s := range skipped {
					fmt.Fprintf(out, "  line %d: %v\n", s.Line, s.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to macro file (required)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")

	return cmd
}
