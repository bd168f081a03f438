package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kosmodev/ctxavail/internal/clock"
	"github.com/kosmodev/ctxavail/internal/contract"
	"github.com/kosmodev/ctxavail/internal/timeparse"
)

const fallbackSlotDurationMin = 30

// Decide runs the full query -> availability decision, per spec.md §4.6:
// resolve a window or a slot intent from the query, check it against the
// events, and either report the conflict (with suggestions when it's a
// range) or report free/unknown with suggestions when a slot intent was
// also present.
//
// Decide never panics outward: an unexpected internal fault is logged and
// reported as availability "unknown" rather than propagated, since this is
// the last stop before the result reaches a caller.
func Decide(c clock.Clock, query string, events []contract.Event, cfg contract.Config) (result contract.AvailabilityResult) {
	queryID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("query_id", queryID).Msg("availability.decide.internal_fault")
			result = unknownResult(queryID, "Could not evaluate availability due to an internal error.", nil)
		}
	}()
	return decide(c, query, events, cfg, queryID)
}

func decide(c clock.Clock, query string, events []contract.Event, cfg contract.Config, queryID string) contract.AvailabilityResult {
	loc := clock.LoadZone(cfg.DefaultTZ)
	now := c.Now().In(loc)
	edgePolicy := cfg.EdgePolicy
	if edgePolicy == "" {
		edgePolicy = contract.EdgePolicyExclusiveEnd
	}

	win, hasWindow := timeparse.ParseWindow(query, now, loc)
	if !hasWindow {
		intent, hasIntent := timeparse.ParseSlotIntent(query, now, loc)
		if !hasIntent {
			return unknownResult(queryID, "Could not resolve a specific time window from the query.", nil)
		}
		slots := suggestSlotsForIntent(intent, events, loc, cfg)
		if len(slots) > 0 {
			return unknownResult(queryID, "No fixed window requested; here are the earliest open slots.", slots)
		}
		return unknownResult(queryID, "No fixed window requested and no open slots were found.", nil)
	}

	conflicts := DetectConflicts(win, events, loc, edgePolicy)
	secondary, hasSecondary := timeparse.ParseSlotIntent(query, now, loc)
	durationMin := fallbackSlotDurationMin
	if hasSecondary && secondary.Mode == timeparse.ModeDayWindow {
		durationMin = secondary.DurationMin
	}

	if len(conflicts) > 0 {
		first := conflicts[0]
		if win.IsPoint() {
			return contract.AvailabilityResult{
				QueryID:      queryID,
				Availability: contract.AvailabilityBusy,
				Conflicts:    conflicts,
				Explanation:  explainPoint(first),
			}
		}
		blocks := MergeOverlaps(NormalizeEvents(events, loc))
		suggestions := FindSlots(blocks, win.Start, win.End, durationMin, DefaultMaxSuggestions)
		return contract.AvailabilityResult{
			QueryID:        queryID,
			Availability:   contract.AvailabilityBusy,
			Conflicts:      conflicts,
			Explanation:    explainRange(first),
			SuggestedSlots: suggestions,
		}
	}

	if win.IsPoint() {
		return contract.AvailabilityResult{
			QueryID:      queryID,
			Availability: contract.AvailabilityFree,
			Explanation:  "No conflicting events at that time.",
		}
	}

	var suggestions []contract.SuggestedSlot
	explanation := "No conflicts in the requested window."
	if hasSecondary && secondary.Mode == timeparse.ModeDayWindow {
		blocks := MergeOverlaps(NormalizeEvents(events, loc))
		suggestions = FindSlots(blocks, win.Start, win.End, durationMin, DefaultMaxSuggestions)
		if len(suggestions) > 0 {
			explanation = "Window is free; here are the earliest open slots."
		}
	}
	return contract.AvailabilityResult{
		QueryID:        queryID,
		Availability:   contract.AvailabilityFree,
		Explanation:    explanation,
		SuggestedSlots: suggestions,
	}
}

func unknownResult(queryID, explanation string, slots []contract.SuggestedSlot) contract.AvailabilityResult {
	return contract.AvailabilityResult{
		QueryID:        queryID,
		Availability:   contract.AvailabilityUnknown,
		Explanation:    explanation,
		SuggestedSlots: slots,
	}
}

// suggestSlotsForIntent clamps the requested slot-intent window to the
// configured work hours (this clamp applies only here, in the standalone
// slot-suggestion path; it never touches a window the user stated
// explicitly).
func suggestSlotsForIntent(intent timeparse.SlotIntent, events []contract.Event, loc *time.Location, cfg contract.Config) []contract.SuggestedSlot {
	whStartH, whStartM, ok1 := parseHHMM(cfg.WorkHoursStart)
	whEndH, whEndM, ok2 := parseHHMM(cfg.WorkHoursEnd)
	if !ok1 {
		whStartH, whStartM = 9, 0
	}
	if !ok2 {
		whEndH, whEndM = 18, 0
	}

	blocks := MergeOverlaps(NormalizeEvents(events, loc))

	switch intent.Mode {
	case timeparse.ModeAfterTime:
		y, m, d := intent.After.Date()
		workStart := time.Date(y, m, d, whStartH, whStartM, 0, 0, loc)
		workEnd := time.Date(y, m, d, whEndH, whEndM, 0, 0, loc)
		winStart := maxTime(intent.After, workStart)
		if !winStart.Before(workEnd) {
			return nil
		}
		return FindSlots(blocks, winStart, workEnd, intent.DurationMin, DefaultMaxSuggestions)

	case timeparse.ModeDayWindow:
		y, m, d := intent.Start.Date()
		workStart := time.Date(y, m, d, whStartH, whStartM, 0, 0, loc)
		workEnd := time.Date(y, m, d, whEndH, whEndM, 0, 0, loc)
		winStart := maxTime(intent.Start, workStart)
		winEnd := minTime(intent.End, workEnd)
		if !winStart.Before(winEnd) {
			return nil
		}
		return FindSlots(blocks, winStart, winEnd, intent.DurationMin, DefaultMaxSuggestions)

	default:
		return nil
	}
}

func parseHHMM(s string) (int, int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, min, true
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func explainPoint(c contract.Conflict) string {
	return fmt.Sprintf("Conflicts with %s at %s.", c.Title, hhmm(c.Start))
}

func explainRange(c contract.Conflict) string {
	return fmt.Sprintf("Conflicts with %s %s–%s.", c.Title, hhmm(c.Start), hhmm(c.End))
}

func hhmm(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Format("15:04")
}
