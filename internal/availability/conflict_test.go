package availability

import (
	"testing"
	"time"

	"github.com/kosmodev/ctxavail/internal/contract"
	"github.com/kosmodev/ctxavail/internal/timeparse"
)

func win(start, end time.Time) timeparse.Window {
	return timeparse.Window{Start: start, End: end}
}

func TestOverlapsExclusiveEndDoesNotConflictOnTouch(t *testing.T) {
	base := time.Date(2026, 2, 9, 10, 0, 0, 0, chicago)
	if Overlaps(base, base.Add(time.Hour), base.Add(-time.Hour), base, contract.EdgePolicyExclusiveEnd) {
		t.Fatal("expected touching spans not to conflict under exclusive_end")
	}
}

func TestOverlapsInclusiveConflictsOnTouch(t *testing.T) {
	base := time.Date(2026, 2, 9, 10, 0, 0, 0, chicago)
	if !Overlaps(base, base.Add(time.Hour), base.Add(-time.Hour), base, contract.EdgePolicyInclusive) {
		t.Fatal("expected touching spans to conflict under inclusive")
	}
}

func TestDetectConflictsRangeWindow(t *testing.T) {
	start := time.Date(2026, 2, 9, 10, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "Project Sync", Start: start.Format(time.RFC3339), End: start.Add(time.Hour).Format(time.RFC3339)},
	}
	window := win(start, start.Add(time.Hour))
	conflicts := DetectConflicts(window, events, chicago, contract.EdgePolicyExclusiveEnd)
	if len(conflicts) != 1 || conflicts[0].Title != "Project Sync" {
		t.Fatalf("expected one conflict, got %+v", conflicts)
	}
}

func TestDetectConflictsTouchingBlockIsFreeUnderExclusiveEnd(t *testing.T) {
	qStart := time.Date(2026, 2, 9, 10, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "Standup", Start: qStart.Add(-time.Hour).Format(time.RFC3339), End: qStart.Format(time.RFC3339)},
	}
	window := win(qStart, qStart.Add(time.Hour))
	conflicts := DetectConflicts(window, events, chicago, contract.EdgePolicyExclusiveEnd)
	if len(conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %+v", conflicts)
	}
}

func TestDetectConflictsAllDayExpandsToCivilDay(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "OOO", Start: day.Format(time.RFC3339), End: day.Format(time.RFC3339), AllDay: true},
	}
	afternoon := win(time.Date(2026, 2, 9, 12, 0, 0, 0, chicago), time.Date(2026, 2, 9, 17, 0, 0, 0, chicago))
	conflicts := DetectConflicts(afternoon, events, chicago, contract.EdgePolicyExclusiveEnd)
	if len(conflicts) != 1 || !conflicts[0].AllDay {
		t.Fatalf("expected one all-day conflict, got %+v", conflicts)
	}
}

func TestDetectConflictsPreservesOriginalSpanNotExpanded(t *testing.T) {
	raw := time.Date(2026, 2, 9, 18, 0, 0, 0, chicago)
	events := []contract.Event{
		{Title: "OOO", Start: raw.Format(time.RFC3339), End: raw.Format(time.RFC3339), AllDay: true},
	}
	afternoon := win(time.Date(2026, 2, 9, 12, 0, 0, 0, chicago), time.Date(2026, 2, 9, 17, 0, 0, 0, chicago))
	conflicts := DetectConflicts(afternoon, events, chicago, contract.EdgePolicyExclusiveEnd)
	if len(conflicts) != 1 {
		t.Fatalf("expected conflict despite raw span outside window, got %+v", conflicts)
	}
	if conflicts[0].Start != raw.Format(time.RFC3339) {
		t.Fatalf("expected original raw span preserved, got %q", conflicts[0].Start)
	}
}

func TestDetectConflictsDropsMalformedEvent(t *testing.T) {
	window := win(time.Date(2026, 2, 9, 9, 0, 0, 0, chicago), time.Date(2026, 2, 9, 10, 0, 0, 0, chicago))
	events := []contract.Event{{Title: "bad", Start: "nope", End: "nope"}}
	if conflicts := DetectConflicts(window, events, chicago, contract.EdgePolicyExclusiveEnd); len(conflicts) != 0 {
		t.Fatalf("expected malformed event dropped, got %+v", conflicts)
	}
}
