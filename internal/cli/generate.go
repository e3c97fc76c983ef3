package cli

import (
	"fmt"
	"time"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/macrokey/internal/clock"
	"github.com/SmitUplenchwar2687/macrokey/internal/codec"
	"github.com/SmitUplenchwar2687/macrokey/internal/config"
	"github.com/SmitUplenchwar2687/macrokey/internal/event"
)

func newGenerateCmd() *cobra.Command {
	var (
		output   string
		text     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate macro files and config",
		Long: `Generates sample data for testing and experimentation.

Use "generate macro" to create a macro that types a piece of text.
Use "generate config" to create an example config JSON file.`,
	}

	macroCmd := &cobra.Command{
		Use:   "macro",
		Short: "Generate a macro that types the given text",
		Long: `Creates a macro file that types text on a US keyboard layout.
Characters without a key on that layout are skipped.`,
		Example: `  macrokey generate macro --text "hello world" --output hello.txt
  macrokey generate macro --text "Hi!" --interval 120ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return fmt.Errorf("--text is required")
			}
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			events, skipped := typeText(text, interval)
			if err := codec.SaveFile(output, events); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d events to %s\n", len(events), output)
			fmt.Fprintf(out, "  Characters: %d\n", len([]rune(text)))
			fmt.Fprintf(out, "  Interval:   %s\n", interval)
			if skipped > 0 {
				fmt.Fprintf(out, "  Skipped:    %d (no key on US layout)\n", skipped)
			}
			return nil
		},
	}

	macroCmd.Flags().StringVar(&output, "output", "macro.txt", "output file path")
	macroCmd.Flags().StringVar(&text, "text", "", "text to type (required)")
	macroCmd.Flags().DurationVar(&interval, "interval", 50*time.Millisecond, "time between key events")

	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Generate an example config JSON file",
		Example: `  macrokey generate config --output macrokey.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteExample(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated example config at %s\n", output)
			return nil
		},
	}

	configCmd.Flags().StringVar(&output, "output", "macrokey.json", "output file path")

	cmd.AddCommand(macroCmd, configCmd)
	return cmd
}

var unshifted = map[rune]event.Key{
	' ':  event.KeySpace,
	'\n': event.KeyReturn,
	'\t': event.KeyTab,
	'-':  event.KeyMinus,
	'=':  event.KeyEqual,
	'[':  event.KeyLeftBracket,
	']':  event.KeyRightBracket,
	';':  event.KeySemiColon,
	'\'': event.KeyQuote,
	'\\': event.KeyBackSlash,
	',':  event.KeyComma,
	'.':  event.KeyDot,
	'/':  event.KeySlash,
	'`':  event.KeyBackQuote,
	'0':  event.KeyNum0,
	'1':  event.KeyNum1,
	'2':  event.KeyNum2,
	'3':  event.KeyNum3,
	'4':  event.KeyNum4,
	'5':  event.KeyNum5,
	'6':  event.KeyNum6,
	'7':  event.KeyNum7,
	'8':  event.KeyNum8,
	'9':  event.KeyNum9,
}

var shifted = map[rune]event.Key{
	'!': event.KeyNum1,
	'@': event.KeyNum2,
	'#': event.KeyNum3,
	'$': event.KeyNum4,
	'%': event.KeyNum5,
	'^': event.KeyNum6,
	'&': event.KeyNum7,
	'*': event.KeyNum8,
	'(': event.KeyNum9,
	')': event.KeyNum0,
	'_': event.KeyMinus,
	'+': event.KeyEqual,
	'{': event.KeyLeftBracket,
	'}': event.KeyRightBracket,
	':': event.KeySemiColon,
	'"': event.KeyQuote,
	'|': event.KeyBackSlash,
	'<': event.KeyComma,
	'>': event.KeyDot,
	'?': event.KeySlash,
	'~': event.KeyBackQuote,
}

// keyFor returns the key that produces r and whether shift must be held.
func keyFor(r rune) (event.Key, bool, bool) {
	if r < unicode.MaxASCII && unicode.IsLetter(r) {
		k, _, err := event.ParseKey("Key" + string(unicode.ToUpper(r)))
		if err != nil {
			return event.KeyUnknown, false, false
		}
		return k, unicode.IsUpper(r), true
	}
	if k, ok := unshifted[r]; ok {
		return k, false, true
	}
	if k, ok := shifted[r]; ok {
		return k, true, true
	}
	return event.KeyUnknown, false, false
}

// typeText builds key events that type text, one event every interval.
// It returns the events and the number of characters that were skipped.
func typeText(text string, interval time.Duration) ([]event.Recorded, int) {
	var (
		events  []event.Recorded
		skipped int
		at      time.Duration
	)
	emit := func(in event.Input) {
		at += interval
		events = append(events, event.Recorded{
			Event:  in,
			Value:  in.KeyName(),
			Offset: clock.Seconds(at),
		})
	}

	for _, r := range text {
		k, shift, ok := keyFor(r)
		if !ok {
			skipped++
			continue
		}
		if shift {
			emit(event.KeyPress(event.KeyShiftLeft))
		}
		emit(event.KeyPress(k))
		emit(event.KeyRelease(k))
		if shift {
			emit(event.KeyRelease(event.KeyShiftLeft))
		}
	}
	return events, skipped
}
