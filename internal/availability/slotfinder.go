package availability

import (
	"time"

	"github.com/google/uuid"
	"github.com/kosmodev/ctxavail/internal/contract"
)

// DefaultMaxSuggestions is the number of slots suggested when a caller
// doesn't override it.
const DefaultMaxSuggestions = 2

// FindSlots walks merged, disjoint busy blocks left to right from winStart,
// emitting the earliest free segments of at least durationMin inside
// [winStart, winEnd) until maxSuggestions slots have been found or the
// window is exhausted. blocks must already be sorted and disjoint (see
// MergeOverlaps).
func FindSlots(blocks []BusyBlock, winStart, winEnd time.Time, durationMin int, maxSuggestions int) []contract.SuggestedSlot {
	if !winStart.Before(winEnd) || durationMin <= 0 {
		return nil
	}
	duration := time.Duration(durationMin) * time.Minute

	var out []contract.SuggestedSlot
	cursor := winStart
	for _, b := range blocks {
		if !b.End.After(winStart) || !b.Start.Before(winEnd) {
			continue
		}
		if cursor.Before(b.Start) {
			segEnd := b.Start
			if winEnd.Before(segEnd) {
				segEnd = winEnd
			}
			if segEnd.Sub(cursor) >= duration {
				out = append(out, makeSlot(cursor, duration))
				if len(out) >= maxSuggestions {
					return out
				}
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(winEnd) {
			return out
		}
	}

	if cursor.Before(winEnd) && winEnd.Sub(cursor) >= duration {
		out = append(out, makeSlot(cursor, duration))
	}
	return out
}

func makeSlot(start time.Time, duration time.Duration) contract.SuggestedSlot {
	return contract.SuggestedSlot{
		ID:     uuid.NewString(),
		Start:  formatISO(start),
		End:    formatISO(start.Add(duration)),
		Reason: "earliest free segment",
	}
}
