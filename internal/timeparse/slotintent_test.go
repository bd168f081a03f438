package timeparse

import (
	"testing"
	"time"
)

func TestParseSlotIntentAfterTimeFirst(t *testing.T) {
	si, ok := ParseSlotIntent("book 30 min after 15:00 today", fixedNow(), chicago)
	if !ok || si.Mode != ModeAfterTime {
		t.Fatalf("expected after_time match, got %+v ok=%v", si, ok)
	}
	if si.DurationMin != 30 {
		t.Fatalf("expected 30 min, got %d", si.DurationMin)
	}
	if si.After.Hour() != 15 || si.After.Minute() != 0 || si.After.Day() != 8 {
		t.Fatalf("unexpected after: %v", si.After)
	}
}

func TestParseSlotIntentAfterDayFirst(t *testing.T) {
	si, ok := ParseSlotIntent("find 45 minutes after tomorrow 9:15", fixedNow(), chicago)
	if !ok || si.Mode != ModeAfterTime {
		t.Fatalf("expected after_time match, got %+v ok=%v", si, ok)
	}
	if si.DurationMin != 45 {
		t.Fatalf("expected 45 min, got %d", si.DurationMin)
	}
	if si.After.Day() != 9 || si.After.Hour() != 9 || si.After.Minute() != 15 {
		t.Fatalf("unexpected after: %v", si.After)
	}
}

func TestParseSlotIntentAfterBareTimeAssumesToday(t *testing.T) {
	si, ok := ParseSlotIntent("schedule 45 m after 9", fixedNow(), chicago)
	if !ok || si.Mode != ModeAfterTime {
		t.Fatalf("expected after_time match, got %+v ok=%v", si, ok)
	}
	if si.After.Day() != 8 || si.After.Hour() != 9 {
		t.Fatalf("unexpected after: %v", si.After)
	}
}

func TestParseSlotIntentAnySlotWeekdayThis(t *testing.T) {
	si, ok := ParseSlotIntent("any slot this fri morning for 45 min", fixedNow(), chicago)
	if !ok || si.Mode != ModeDayWindow {
		t.Fatalf("expected day_window match, got %+v ok=%v", si, ok)
	}
	if si.Start.Weekday() != time.Friday {
		t.Fatalf("expected Friday, got %v", si.Start.Weekday())
	}
	if si.Start.Hour() != 9 || si.End.Hour() != 12 {
		t.Fatalf("unexpected morning bounds: %v - %v", si.Start, si.End)
	}
	if si.DurationMin != 45 {
		t.Fatalf("expected 45 min, got %d", si.DurationMin)
	}
}

func TestParseSlotIntentAnySlotWeekdayNextIsOneWeekLater(t *testing.T) {
	this, _ := ParseSlotIntent("any slot this wed", fixedNow(), chicago)
	next, _ := ParseSlotIntent("any slot next wed", fixedNow(), chicago)
	if next.Start.Sub(this.Start) != 7*24*time.Hour {
		t.Fatalf("expected next to be exactly one week after this: this=%v next=%v", this.Start, next.Start)
	}
}

func TestParseSlotIntentAnySlotWeekdayNoDaypartIsFullDay(t *testing.T) {
	si, ok := ParseSlotIntent("any slot this mon", fixedNow(), chicago)
	if !ok {
		t.Fatal("expected match")
	}
	if si.Start.Hour() != 0 || si.Start.Minute() != 0 {
		t.Fatalf("expected 00:00 start, got %v", si.Start)
	}
	if si.End.Hour() != 23 || si.End.Minute() != 59 {
		t.Fatalf("expected 23:59 end, got %v", si.End)
	}
	if si.DurationMin != defaultSlotDurationMin {
		t.Fatalf("expected default duration, got %d", si.DurationMin)
	}
}

func TestParseSlotIntentAnySlotDayWithDaypart(t *testing.T) {
	si, ok := ParseSlotIntent("any slot tomorrow afternoon", fixedNow(), chicago)
	if !ok || si.Mode != ModeDayWindow {
		t.Fatalf("expected day_window, got %+v ok=%v", si, ok)
	}
	if si.Start.Hour() != 12 || si.End.Hour() != 17 {
		t.Fatalf("unexpected bounds: %v - %v", si.Start, si.End)
	}
}

func TestParseSlotIntentAnySlotDayNoDaypartDefaultsToWorkHours(t *testing.T) {
	si, ok := ParseSlotIntent("any slot today", fixedNow(), chicago)
	if !ok {
		t.Fatal("expected match")
	}
	if si.Start.Hour() != 9 || si.End.Hour() != 18 {
		t.Fatalf("unexpected bounds: %v - %v", si.Start, si.End)
	}
}

func TestParseSlotIntentNoMatch(t *testing.T) {
	if _, ok := ParseSlotIntent("what's on my calendar", fixedNow(), chicago); ok {
		t.Fatal("expected no match")
	}
}

func TestParseSlotIntentAnySlotAlwaysYieldsDayWindow(t *testing.T) {
	// Peripheral property from spec §8: "any slot" always carries a slot
	// intent, independent of the general intent classifier.
	si, ok := ParseSlotIntent("any slot next tue for 20 min", fixedNow(), chicago)
	if !ok || si.Mode != ModeDayWindow || si.DurationMin != 20 {
		t.Fatalf("unexpected: %+v ok=%v", si, ok)
	}
}
