package availability

import (
	"sort"
	"time"

	"github.com/kosmodev/ctxavail/internal/contract"
	"github.com/kosmodev/ctxavail/internal/timeparse"
)

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) overlap under
// the given edge policy. Under exclusive_end, touching spans (a.End ==
// b.Start) do not conflict; under inclusive they do.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time, edgePolicy string) bool {
	if edgePolicy == contract.EdgePolicyInclusive {
		return !aStart.After(bEnd) && !bStart.After(aEnd)
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DetectConflicts reports every raw event that conflicts with window under
// edgePolicy. All-day events are expanded to their civil-day span only for
// the overlap test; the reported Conflict keeps the event's own original
// start/end strings, because the report preserves original titles and
// spans rather than merged ones.
func DetectConflicts(window timeparse.Window, events []contract.Event, loc *time.Location, edgePolicy string) []contract.Conflict {
	var out []contract.Conflict
	for _, ev := range events {
		b, ok := ParseEvent(ev, loc)
		if !ok {
			continue
		}

		testStart, testEnd := b.Start, b.End
		if b.AllDay {
			testStart, testEnd = civilDayBounds(b.Start, loc)
		}

		conflicts := false
		if window.IsPoint() {
			conflicts = !testStart.After(window.Start) && window.Start.Before(testEnd)
		} else {
			conflicts = Overlaps(window.Start, window.End, testStart, testEnd, edgePolicy)
		}
		if !conflicts {
			continue
		}

		out = append(out, contract.Conflict{
			Title:  ev.Title,
			Start:  formatISO(b.Start),
			End:    formatISO(b.End),
			AllDay: b.AllDay,
			Source: "calendar",
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Start == out[j].Start {
			return out[i].End < out[j].End
		}
		return out[i].Start < out[j].Start
	})
	return out
}

func formatISO(t time.Time) string {
	return t.Truncate(time.Second).Format(time.RFC3339)
}
