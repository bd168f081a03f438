package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kosmodev/ctxavail/internal/availability"
	"github.com/kosmodev/ctxavail/internal/clock"
	"github.com/kosmodev/ctxavail/internal/contract"
	"github.com/kosmodev/ctxavail/internal/intent"
)

type queryResult struct {
	Intent string                      `json:"intent"`
	Result contract.AvailabilityResult `json:"result"`
}

func newQueryCmd(opts *globalOptions) *cobra.Command {
	var eventsPath string

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Decide availability for a natural-language time query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer, resolved, err := buildContext(cmd, opts, "query")
			if err != nil {
				return err
			}

			events, err := loadEventsFrom(eventsPath)
			if err != nil {
				_ = printer.Error(contract.ErrInvalidUsage, err.Error(), "check --events points at a JSON array")
				return WrapPrinted(2, err)
			}

			cfg := contract.Config{
				DefaultTZ:      resolved.TZ,
				WorkHoursStart: resolved.WorkHoursStart,
				WorkHoursEnd:   resolved.WorkHoursEnd,
				EdgePolicy:     resolved.EdgePolicy,
			}

			query := args[0]
			result := availability.Decide(clock.New(resolved.TZ), query, events, cfg)
			out := queryResult{Intent: intent.Classify(query), Result: result}

			return successWithMeta(printer, out, nil, nil)
		},
	}

	cmd.Flags().StringVar(&eventsPath, "events", "", "Path to a JSON array of events/context items, or - for stdin")
	return cmd
}

// loadEventsFrom reads a JSON array from path (or stdin for "-") and
// extracts contract.Event values. Each array element is either a direct
// Event-shaped object (title/start/end/all_day) or a tagged context item
// (source/title/metadata), handled via availability.EventsFromItems.
func loadEventsFrom(path string) ([]contract.Event, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := readTextInput(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var direct []contract.Event
	var tagged []any
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, hasMeta := m["metadata"]; hasMeta || m["source"] != nil {
			tagged = append(tagged, m)
			continue
		}
		ev := contract.Event{}
		if v, ok := m["title"].(string); ok {
			ev.Title = v
		}
		if v, ok := m["start"].(string); ok {
			ev.Start = v
		}
		if v, ok := m["end"].(string); ok {
			ev.End = v
		}
		if v, ok := m["all_day"].(bool); ok {
			ev.AllDay = v
		}
		direct = append(direct, ev)
	}

	return append(direct, availability.EventsFromItems(tagged)...), nil
}
