package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kosmodev/ctxavail/internal/availability"
	"github.com/kosmodev/ctxavail/internal/contract"
	"github.com/kosmodev/ctxavail/internal/timeparse"
)

type slotsResult struct {
	Slots []contract.SuggestedSlot `json:"slots"`
}

// newSlotsCmd exercises the normalizer and slot finder directly over an
// explicit window, bypassing the natural-language parser. It reports slots
// only; no conflict detection is run.
func newSlotsCmd(opts *globalOptions) *cobra.Command {
	var eventsPath, fromText, toText, durationText string

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Find the earliest free slots in an explicit window",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, resolved, err := buildContext(cmd, opts, "slots")
			if err != nil {
				return err
			}

			if fromText == "" || toText == "" || durationText == "" {
				err := fmt.Errorf("--from, --to, and --duration are required")
				_ = printer.Error(contract.ErrInvalidUsage, err.Error(), "")
				return WrapPrinted(2, err)
			}

			loc := resolveLocation(resolved.TZ)
			now := time.Now().In(loc)

			from, err := timeparse.ParseDateTime(fromText, now, loc)
			if err != nil {
				_ = printer.Error(contract.ErrInvalidUsage, err.Error(), "--from must be an ISO timestamp or a relative date word")
				return WrapPrinted(2, err)
			}
			to, err := timeparse.ParseDateTime(toText, now, loc)
			if err != nil {
				_ = printer.Error(contract.ErrInvalidUsage, err.Error(), "--to must be an ISO timestamp or a relative date word")
				return WrapPrinted(2, err)
			}
			duration, err := time.ParseDuration(durationText)
			if err != nil {
				_ = printer.Error(contract.ErrInvalidUsage, err.Error(), "--duration must be a Go duration like 30m or 1h")
				return WrapPrinted(2, err)
			}

			events, err := loadEventsFrom(eventsPath)
			if err != nil {
				_ = printer.Error(contract.ErrInvalidUsage, err.Error(), "check --events points at a JSON array")
				return WrapPrinted(2, err)
			}

			blocks := availability.MergeOverlaps(availability.NormalizeEvents(events, loc))
			slots := availability.FindSlots(blocks, from, to, int(duration.Minutes()), availability.DefaultMaxSuggestions)

			return successWithMeta(printer, slotsResult{Slots: slots}, nil, nil)
		},
	}

	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to a JSON array of events/context items, or - for stdin")
	cmd.Flags().StringVar(&fromText, "from", "", "Window start (ISO timestamp or relative date word)")
	cmd.Flags().StringVar(&toText, "to", "", "Window end (ISO timestamp or relative date word)")
	cmd.Flags().StringVar(&durationText, "duration", "", "Slot duration, e.g. 30m or 1h")
	return cmd
}
