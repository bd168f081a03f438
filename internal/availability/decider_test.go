package availability

import (
	"testing"
	"time"

	"github.com/kosmodev/ctxavail/internal/clock"
	"github.com/kosmodev/ctxavail/internal/contract"
)

// fixedNow is a Sunday, so "tomorrow" always lands on the following Monday.
func fixedNow() time.Time {
	return time.Date(2026, 2, 8, 12, 0, 0, 0, chicago)
}

func testConfig() contract.Config {
	cfg := contract.DefaultConfig()
	cfg.DefaultTZ = "America/Chicago"
	return cfg
}

func TestDecideRangeWindowConflict(t *testing.T) {
	tomorrow := time.Date(2026, 2, 9, 10, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "Project Sync", Start: tomorrow.Format(time.RFC3339), End: tomorrow.Add(time.Hour).Format(time.RFC3339)},
	}
	res := Decide(clock.Fixed{At: fixedNow()}, "next mon 10-11", events, testConfig())
	if res.Availability != contract.AvailabilityBusy {
		t.Fatalf("expected busy, got %q (%s)", res.Availability, res.Explanation)
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Title != "Project Sync" {
		t.Fatalf("expected Project Sync conflict, got %+v", res.Conflicts)
	}
}

func TestDecideTouchingEventUnderExclusiveEndIsFree(t *testing.T) {
	tomorrow := time.Date(2026, 2, 9, 10, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "Standup", Start: tomorrow.Add(-time.Hour).Format(time.RFC3339), End: tomorrow.Format(time.RFC3339)},
	}
	res := Decide(clock.Fixed{At: fixedNow()}, "next mon 10-11", events, testConfig())
	if res.Availability != contract.AvailabilityFree {
		t.Fatalf("expected free, got %q (%s)", res.Availability, res.Explanation)
	}
}

func TestDecideAllDayEventConflictsWithDaypart(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "OOO", Start: day.Format(time.RFC3339), End: day.Format(time.RFC3339), AllDay: true},
	}
	res := Decide(clock.Fixed{At: fixedNow()}, "tomorrow afternoon", events, testConfig())
	if res.Availability != contract.AvailabilityBusy {
		t.Fatalf("expected busy, got %q (%s)", res.Availability, res.Explanation)
	}
	if len(res.Conflicts) != 1 || !res.Conflicts[0].AllDay {
		t.Fatalf("expected all-day conflict, got %+v", res.Conflicts)
	}
}

func TestDecideNoEventsAfterTimeSuggestsSlot(t *testing.T) {
	res := Decide(clock.Fixed{At: fixedNow()}, "book 30 min after 15:00 today", nil, testConfig())
	if res.Availability != contract.AvailabilityUnknown {
		t.Fatalf("expected unknown, got %q", res.Availability)
	}
	if len(res.SuggestedSlots) != 1 {
		t.Fatalf("expected one suggested slot, got %+v", res.SuggestedSlots)
	}
	want := time.Date(2026, 2, 8, 15, 0, 0, 0, chicago)
	if res.SuggestedSlots[0].Start != want.Format(time.RFC3339) {
		t.Fatalf("expected slot at 15:00, got %q", res.SuggestedSlots[0].Start)
	}
}

func TestDecideAfterTimeWithExistingBlockSuggestsGapAfterIt(t *testing.T) {
	today := time.Date(2026, 2, 8, 15, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "Standup", Start: today.Format(time.RFC3339), End: today.Add(30 * time.Minute).Format(time.RFC3339)},
	}
	res := Decide(clock.Fixed{At: fixedNow()}, "book 30 min after 15:00 today", events, testConfig())
	if res.Availability != contract.AvailabilityUnknown {
		t.Fatalf("expected unknown, got %q", res.Availability)
	}
	if len(res.SuggestedSlots) != 1 {
		t.Fatalf("expected one suggested slot, got %+v", res.SuggestedSlots)
	}
	want := today.Add(30 * time.Minute)
	if res.SuggestedSlots[0].Start != want.Format(time.RFC3339) {
		t.Fatalf("expected slot at 15:30, got %q", res.SuggestedSlots[0].Start)
	}
}

func TestDecideBusyRangeAlsoReturnsSuggestionsInWindow(t *testing.T) {
	tomorrow := time.Date(2026, 2, 9, 14, 0, 0, 0, chicago)
	block := tomorrow.Add(time.Hour)
	events := []contract.Event{
		{Title: "m2 test", Start: block.Format(time.RFC3339), End: block.Add(time.Hour).Format(time.RFC3339)},
	}
	res := Decide(clock.Fixed{At: fixedNow()}, "next mon 14-17", events, testConfig())
	if res.Availability != contract.AvailabilityBusy {
		t.Fatalf("expected busy, got %q (%s)", res.Availability, res.Explanation)
	}
	if len(res.SuggestedSlots) != 2 {
		t.Fatalf("expected 2 suggestions, got %+v", res.SuggestedSlots)
	}
	if res.SuggestedSlots[0].Start != tomorrow.Format(time.RFC3339) {
		t.Fatalf("expected first suggestion at window start, got %q", res.SuggestedSlots[0].Start)
	}
	wantSecond := block.Add(time.Hour)
	if res.SuggestedSlots[1].Start != wantSecond.Format(time.RFC3339) {
		t.Fatalf("expected second suggestion after block, got %q", res.SuggestedSlots[1].Start)
	}
}

func TestDecideNoWindowNoIntentIsUnknown(t *testing.T) {
	res := Decide(clock.Fixed{At: fixedNow()}, "what's on my calendar", nil, testConfig())
	if res.Availability != contract.AvailabilityUnknown {
		t.Fatalf("expected unknown, got %q", res.Availability)
	}
	if len(res.SuggestedSlots) != 0 {
		t.Fatalf("expected no suggestions, got %+v", res.SuggestedSlots)
	}
}

func TestDecideEachCallGetsAFreshQueryID(t *testing.T) {
	a := Decide(clock.Fixed{At: fixedNow()}, "tomorrow 10-11", nil, testConfig())
	b := Decide(clock.Fixed{At: fixedNow()}, "tomorrow 10-11", nil, testConfig())
	if a.QueryID == "" || a.QueryID == b.QueryID {
		t.Fatalf("expected distinct non-empty query ids, got %q and %q", a.QueryID, b.QueryID)
	}
}
