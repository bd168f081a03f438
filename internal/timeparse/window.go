package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Window is a point (Start == End) or range (Start < End) zoned window, the
// output of ParseWindow.
type Window struct {
	Start time.Time
	End   time.Time
}

// IsPoint reports whether w represents an instant query rather than a range.
func (w Window) IsPoint() bool {
	return w.Start.Equal(w.End)
}

var (
	reDayAtTime = regexp.MustCompile(`\b(today|tomorrow)\s+(?:at\s+)?(\d{1,2})(?::(\d{2}))?\b`)
	reNextWdRng = regexp.MustCompile(`\bnext\s+(mon|tue|wed|thu|thur|thurs|fri|sat|sun)\s+(\d{1,2})(?::(\d{2}))?\s*[-\x{2013}]\s*(\d{1,2})(?::(\d{2}))?\b`)
	reDaypart   = regexp.MustCompile(`\b(today|tomorrow)\s+(morning|afternoon|evening)\b`)
	reAtTime    = regexp.MustCompile(`\bat\s+(\d{1,2})(?::(\d{2}))?\b`)
)

// ParseWindow recognizes the window patterns from spec.md §4.2, trying them
// in order and returning the first match. It never errors: an unrecognized
// string yields (Window{}, false).
func ParseWindow(input string, now time.Time, loc *time.Location) (Window, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return Window{}, false
	}
	now = now.In(loc)

	if m := reDayAtTime.FindStringSubmatch(s); m != nil {
		hh, mm := atoiOr(m[2], 0), atoiOr(m[3], 0)
		hh, mm = clamp24h(hh, mm)
		t := civilAt(dayBase(now, m[1]), hh, mm, loc)
		return Window{Start: t, End: t}, true
	}

	if m := reNextWdRng.FindStringSubmatch(s); m != nil {
		target := nextWeekday(now, dayAbbrev[m[1]])
		h1, m1 := clamp24h(atoiOr(m[2], 0), atoiOr(m[3], 0))
		h2, m2 := clamp24h(atoiOr(m[4], 0), atoiOr(m[5], 0))
		start := civilAt(target, h1, m1, loc)
		end := civilAt(target, h2, m2, loc)
		if end.Before(start) {
			end = start
		}
		return Window{Start: start, End: end}, true
	}

	if m := reDaypart.FindStringSubmatch(s); m != nil {
		base := dayBase(now, m[1])
		sh, sm, eh, em := daypartBounds(m[2])
		return Window{Start: civilAt(base, sh, sm, loc), End: civilAt(base, eh, em, loc)}, true
	}

	if m := reAtTime.FindStringSubmatch(s); m != nil {
		hh, mm := clamp24h(atoiOr(m[1], 0), atoiOr(m[2], 0))
		t := civilAt(now, hh, mm, loc)
		return Window{Start: t, End: t}, true
	}

	return Window{}, false
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
