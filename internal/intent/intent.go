// Package intent classifies a free-form query into the source family that
// should answer it. It is peripheral to the availability core (spec.md
// names it only in passing via the "classifier property" in §8), but the
// core's "any slot" queries must route to "calendar" for the rest of the
// context-engine to even hand the query to the availability decider, so it
// ships alongside the parser it feeds.
package intent

import "strings"

const (
	Calendar = "calendar"
	Notes    = "notes"
	Code     = "code"
	General  = "general"
)

var calendarTerms = []string{
	"am i free",
	"free at", "busy at",
	"tomorrow", "today", "next ",
	"slot", "book", "schedule", "reschedule",
	"morning", "afternoon", "evening",
}

// Classify routes a query string to the source family most likely to answer
// it. "any slot ..." queries always classify as Calendar.
func Classify(text string) string {
	s := strings.ToLower(text)

	for _, t := range calendarTerms {
		if strings.Contains(s, t) {
			return Calendar
		}
	}
	if strings.Contains(s, "notion") || strings.Contains(s, "notes") || strings.Contains(s, "meeting notes") {
		return Notes
	}
	if strings.Contains(s, "github") || strings.Contains(s, "pr ") || strings.Contains(s, "issue ") {
		return Code
	}
	return General
}
