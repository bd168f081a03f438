package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kosmodev/ctxavail/internal/timeparse"
)

type windowOutput struct {
	Matched bool   `json:"matched"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
	IsPoint bool   `json:"is_point,omitempty"`
}

type slotIntentOutput struct {
	Matched     bool   `json:"matched"`
	Mode        string `json:"mode,omitempty"`
	After       string `json:"after,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
}

// newParseCmd groups the debug commands that print C2's raw parser output,
// exercising the temporal parser directly rather than through Decide.
func newParseCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Debug the temporal query parser directly",
	}
	cmd.AddCommand(newParseWindowCmd(opts))
	cmd.AddCommand(newParseIntentCmd(opts))
	return cmd
}

func newParseWindowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "window <text>",
		Short: "Parse a query into a Window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, resolved, err := buildContext(cmd, opts, "parse.window")
			if err != nil {
				return err
			}
			loc := resolveLocation(resolved.TZ)
			now := time.Now().In(loc)

			w, ok := timeparse.ParseWindow(args[0], now, loc)
			out := windowOutput{Matched: ok}
			if ok {
				out.Start = w.Start.Format(time.RFC3339)
				out.End = w.End.Format(time.RFC3339)
				out.IsPoint = w.IsPoint()
			}
			return successWithMeta(printer, out, nil, nil)
		},
	}
}

func newParseIntentCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "intent <text>",
		Short: "Parse a query into a SlotIntent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, resolved, err := buildContext(cmd, opts, "parse.intent")
			if err != nil {
				return err
			}
			loc := resolveLocation(resolved.TZ)
			now := time.Now().In(loc)

			si, ok := timeparse.ParseSlotIntent(args[0], now, loc)
			out := slotIntentOutput{Matched: ok}
			if ok {
				out.Mode = string(si.Mode)
				out.DurationMin = si.DurationMin
				switch si.Mode {
				case timeparse.ModeAfterTime:
					out.After = si.After.Format(time.RFC3339)
				case timeparse.ModeDayWindow:
					out.Start = si.Start.Format(time.RFC3339)
					out.End = si.End.Format(time.RFC3339)
				}
			}
			return successWithMeta(printer, out, nil, nil)
		},
	}
}
