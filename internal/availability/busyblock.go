// Package availability implements the normalizer, conflict detector, slot
// finder, and orchestrating decider described in spec.md §4.3-§4.6: given a
// query string and a set of calendar events, it decides free/busy/unknown
// and proposes earliest free slots.
package availability

import (
	"sort"
	"strings"
	"time"

	"github.com/kosmodev/ctxavail/internal/contract"
)

// BusyBlock is the internal representation of a calendar block: a zoned
// [Start, End) span with Start <= End, optionally tagged all-day.
type BusyBlock struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseISO parses an ISO-8601ish timestamp. A trailing "Z" is treated as
// UTC; a naive (no-offset) timestamp is attached to loc; anything with an
// explicit offset is converted into loc.
func parseISO(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.HasSuffix(s, "Z") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.In(loc), true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	for _, layout := range isoLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseEvent parses an event's raw start/end strings into a BusyBlock,
// attaching the configured zone. It does not expand all-day spans; it
// returns the event's own timestamps verbatim (parsed). A malformed
// timestamp yields (BusyBlock{}, false) so the caller can drop the event
// silently, per spec.md §7.
func ParseEvent(ev contract.Event, loc *time.Location) (BusyBlock, bool) {
	start, ok := parseISO(ev.Start, loc)
	if !ok {
		return BusyBlock{}, false
	}
	end, ok := parseISO(ev.End, loc)
	if !ok {
		return BusyBlock{}, false
	}
	return BusyBlock{Title: ev.Title, Start: start, End: end, AllDay: ev.AllDay}, true
}

// civilDayBounds returns [civil_midnight, civil_midnight + 24h) for the
// civil date of t in loc.
func civilDayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.Add(24 * time.Hour)
}

// ExpandAllDay replaces an all-day block's span with its civil-day span,
// regardless of the original timestamps. Non-all-day blocks pass through
// unchanged.
func ExpandAllDay(b BusyBlock, loc *time.Location) BusyBlock {
	if !b.AllDay {
		return b
	}
	start, end := civilDayBounds(b.Start, loc)
	return BusyBlock{Title: b.Title, Start: start, End: end, AllDay: true}
}

// NormalizeEvents parses every event, dropping malformed ones, and expands
// all-day events to their civil-day span. The result is neither sorted nor
// merged — call MergeOverlaps for that.
func NormalizeEvents(events []contract.Event, loc *time.Location) []BusyBlock {
	out := make([]BusyBlock, 0, len(events))
	for _, ev := range events {
		b, ok := ParseEvent(ev, loc)
		if !ok {
			continue
		}
		out = append(out, ExpandAllDay(b, loc))
	}
	return out
}

// MergeOverlaps sorts blocks by (start, end) and absorbs any block that
// overlaps or exactly touches the previous one, producing disjoint blocks
// sorted by start.
func MergeOverlaps(blocks []BusyBlock) []BusyBlock {
	if len(blocks) == 0 {
		return nil
	}
	sorted := make([]BusyBlock, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]BusyBlock, 0, len(sorted))
	cur := sorted[0]
	for _, b := range sorted[1:] {
		if b.Start.Before(cur.End) || b.Start.Equal(cur.End) {
			if b.End.After(cur.End) {
				cur.End = b.End
			}
			continue
		}
		merged = append(merged, cur)
		cur = b
	}
	merged = append(merged, cur)
	return merged
}
