package timeparse

import "time"

// dayAbbrev maps the weekday abbreviations spec.md enumerates (including the
// thu/thur/thurs aliases) to time.Weekday.
var dayAbbrev = map[string]time.Weekday{
	"mon":   time.Monday,
	"tue":   time.Tuesday,
	"wed":   time.Wednesday,
	"thu":   time.Thursday,
	"thur":  time.Thursday,
	"thurs": time.Thursday,
	"fri":   time.Friday,
	"sat":   time.Saturday,
	"sun":   time.Sunday,
}

// clamp24h enforces the strict 24-hour clock: hours 0..23, minutes 0..59.
func clamp24h(hh, mm int) (int, int) {
	if hh < 0 {
		hh = 0
	}
	if hh > 23 {
		hh = 23
	}
	if mm < 0 {
		mm = 0
	}
	if mm > 59 {
		mm = 59
	}
	return hh, mm
}

// daypartBounds returns the fixed (startHour, startMin, endHour, endMin)
// bounds for a named daypart. Unknown labels fall back to the 09:00-18:00
// default day window used elsewhere in the grammar.
func daypartBounds(label string) (int, int, int, int) {
	switch label {
	case "morning":
		return 9, 0, 12, 0
	case "afternoon":
		return 12, 0, 17, 0
	case "evening":
		return 17, 0, 21, 0
	default:
		return 9, 0, 18, 0
	}
}

// dayBase resolves the "today"/"tomorrow" anchor word relative to now.
func dayBase(now time.Time, word string) time.Time {
	if word == "tomorrow" {
		return now.AddDate(0, 0, 1)
	}
	return now
}

// civilAt returns the civil instant on base's date at hh:mm:00 in loc.
func civilAt(base time.Time, hh, mm int, loc *time.Location) time.Time {
	y, mo, d := base.Date()
	return time.Date(y, mo, d, hh, mm, 0, 0, loc)
}

// nextWeekday returns the next occurrence of target strictly after base's
// civil date: days-ahead = ((target - base.Weekday()) + 7) % 7, and 0 maps
// to 7 so the result is always in the future.
func nextWeekday(base time.Time, target time.Weekday) time.Time {
	daysAhead := (int(target) - int(base.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return base.AddDate(0, 0, daysAhead)
}
