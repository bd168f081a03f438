package timeparse

import (
	"regexp"
	"strings"
	"time"
)

// SlotIntentMode tags which shape a SlotIntent carries.
type SlotIntentMode string

const (
	ModeNone      SlotIntentMode = ""
	ModeAfterTime SlotIntentMode = "after_time"
	ModeDayWindow SlotIntentMode = "day_window"
)

// SlotIntent is the tagged-variant output of ParseSlotIntent: either an
// AfterTime request (book N minutes after a given instant) or a DayWindow
// request (book N minutes somewhere inside [Start, End)).
type SlotIntent struct {
	Mode        SlotIntentMode
	After       time.Time
	Start       time.Time
	End         time.Time
	DurationMin int
}

// IsZero reports whether no slot intent was recognized.
func (si SlotIntent) IsZero() bool {
	return si.Mode == ModeNone
}

const defaultSlotDurationMin = 30

var (
	reDurationToken  = regexp.MustCompile(`\b(?:book|find|schedule)\s+(\d{1,3})\s*(?:min(?:ute)?s?|m)\b`)
	reAfterKeyword   = regexp.MustCompile(`\bafter\b`)
	reAfterTimeFirst = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?(?:\s+(today|tomorrow))?\b`)
	reAfterDayFirst  = regexp.MustCompile(`^\s*(today|tomorrow)\s+(\d{1,2})(?::(\d{2}))?\b`)
	reAfterBareTime  = regexp.MustCompile(`^\s*(\d{1,2})(?::(\d{2}))?\b`)

	reAnySlotWeekday = regexp.MustCompile(`\bany\s+slot\s+(this|next)\s+(mon|tue|wed|thu|thur|thurs|fri|sat|sun)(?:\s+(morning|afternoon|evening))?(?:\s+for\s+(\d{1,3})\s*(?:min(?:ute)?s?|m))?`)
	reAnySlotDay     = regexp.MustCompile(`\bany\s+slot\s+(today|tomorrow)(?:\s+(morning|afternoon|evening))?(?:\s+for\s+(\d{1,3})\s*(?:min(?:ute)?s?|m))?`)
)

// ParseSlotIntent recognizes the slot-finding patterns from spec.md §4.2.
// It never errors: an unrecognized string yields (SlotIntent{}, false).
func ParseSlotIntent(input string, now time.Time, loc *time.Location) (SlotIntent, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return SlotIntent{}, false
	}
	now = now.In(loc)

	if intent, ok := parseAfterTime(s, now, loc); ok {
		return intent, true
	}
	if intent, ok := parseAnySlotWeekday(s, now, loc); ok {
		return intent, true
	}
	if intent, ok := parseAnySlotDay(s, now, loc); ok {
		return intent, true
	}
	return SlotIntent{}, false
}

func parseAfterTime(s string, now time.Time, loc *time.Location) (SlotIntent, bool) {
	durMatch := reDurationToken.FindStringSubmatch(s)
	afterLoc := reAfterKeyword.FindStringIndex(s)
	if durMatch == nil || afterLoc == nil {
		return SlotIntent{}, false
	}
	dur := atoiOr(durMatch[1], defaultSlotDurationMin)
	tail := strings.TrimSpace(s[afterLoc[1]:])

	if m := reAfterTimeFirst.FindStringSubmatch(tail); m != nil {
		hh, mm := clamp24h(atoiOr(m[1], 0), atoiOr(m[2], 0))
		base := dayBase(now, m[3])
		return SlotIntent{Mode: ModeAfterTime, After: civilAt(base, hh, mm, loc), DurationMin: dur}, true
	}
	if m := reAfterDayFirst.FindStringSubmatch(tail); m != nil {
		hh, mm := clamp24h(atoiOr(m[2], 0), atoiOr(m[3], 0))
		base := dayBase(now, m[1])
		return SlotIntent{Mode: ModeAfterTime, After: civilAt(base, hh, mm, loc), DurationMin: dur}, true
	}
	if m := reAfterBareTime.FindStringSubmatch(tail); m != nil {
		hh, mm := clamp24h(atoiOr(m[1], 0), atoiOr(m[2], 0))
		return SlotIntent{Mode: ModeAfterTime, After: civilAt(now, hh, mm, loc), DurationMin: dur}, true
	}
	return SlotIntent{}, false
}

func parseAnySlotWeekday(s string, now time.Time, loc *time.Location) (SlotIntent, bool) {
	m := reAnySlotWeekday.FindStringSubmatch(s)
	if m == nil {
		return SlotIntent{}, false
	}
	thisOrNext, wd, daypart, durS := m[1], m[2], m[3], m[4]
	anchor := now
	if thisOrNext == "next" {
		anchor = now.AddDate(0, 0, 7)
	}
	base := nextWeekday(anchor, dayAbbrev[wd])
	duration := atoiOr(durS, defaultSlotDurationMin)

	var start, end time.Time
	if daypart != "" {
		sh, sm, eh, em := daypartBounds(daypart)
		start, end = civilAt(base, sh, sm, loc), civilAt(base, eh, em, loc)
	} else {
		start, end = civilAt(base, 0, 0, loc), civilAt(base, 23, 59, loc)
	}
	return SlotIntent{Mode: ModeDayWindow, Start: start, End: end, DurationMin: duration}, true
}

func parseAnySlotDay(s string, now time.Time, loc *time.Location) (SlotIntent, bool) {
	m := reAnySlotDay.FindStringSubmatch(s)
	if m == nil {
		return SlotIntent{}, false
	}
	dayWord, daypart, durS := m[1], m[2], m[3]
	base := dayBase(now, dayWord)
	duration := atoiOr(durS, defaultSlotDurationMin)

	var start, end time.Time
	if daypart != "" {
		sh, sm, eh, em := daypartBounds(daypart)
		start, end = civilAt(base, sh, sm, loc), civilAt(base, eh, em, loc)
	} else {
		start, end = civilAt(base, 9, 0, loc), civilAt(base, 18, 0, loc)
	}
	return SlotIntent{Mode: ModeDayWindow, Start: start, End: end, DurationMin: duration}, true
}
