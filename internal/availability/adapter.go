package availability

import "github.com/kosmodev/ctxavail/internal/contract"

// EventsFromItems extracts calendar events from a mixed bag of context
// items, as they'd arrive tagged by source from the rest of a context
// engine. Only items tagged source "calendar" are considered; everything
// else (notes, code, etc.) is silently skipped, as is a calendar item
// missing a usable start/end pair. Items may be typed contract.ContextItem
// values or untyped map[string]any bags, matching the shapes a JSON
// boundary tends to hand back.
func EventsFromItems(items []any) []contract.Event {
	out := make([]contract.Event, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case contract.ContextItem:
			if v.Source != "calendar" {
				continue
			}
			if ev, ok := eventFromMetadata(v.Metadata, v.Title); ok {
				out = append(out, ev)
			}
		case map[string]any:
			src, _ := v["source"].(string)
			if src != "calendar" {
				continue
			}
			md, _ := v["metadata"].(map[string]any)
			title, _ := v["title"].(string)
			if ev, ok := eventFromMetadata(md, title); ok {
				out = append(out, ev)
			}
		}
	}
	return out
}

func eventFromMetadata(md map[string]any, fallbackTitle string) (contract.Event, bool) {
	if md == nil {
		return contract.Event{}, false
	}
	start, ok := md["start"].(string)
	if !ok || start == "" {
		return contract.Event{}, false
	}
	end, ok := md["end"].(string)
	if !ok || end == "" {
		return contract.Event{}, false
	}
	title := fallbackTitle
	if t, ok := md["title"].(string); ok && t != "" {
		title = t
	}
	if title == "" {
		title = "calendar event"
	}
	allDay, _ := md["all_day"].(bool)
	return contract.Event{Title: title, Start: start, End: end, AllDay: allDay}, true
}
