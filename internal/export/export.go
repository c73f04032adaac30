package export

import (
	"time"

	"church-calendar/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// eventSpan resolves an event's start and end instants as naive local
// wall clock. An unparsable start means the event cannot be rendered;
// a missing or unparsable end defaults to start plus one hour, derived
// here and never written back to the store.
func eventSpan(event *model.Event) (start, end time.Time, ok bool) {
	start, err := time.Parse(dateTimeLayout, event.StartDate+" "+event.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	end = start.Add(time.Hour)
	if event.EndDate != "" && event.EndTime != "" {
		if parsed, err := time.Parse(dateTimeLayout, event.EndDate+" "+event.EndTime); err == nil {
			end = parsed
		}
	}
	return start, end, true
}

// FilterYear keeps events whose start date parses and falls in the given
// calendar year; exports only ever cover the current year.
func FilterYear(events []*model.Event, year int) []*model.Event {
	kept := make([]*model.Event, 0, len(events))
	for _, event := range events {
		start, err := time.Parse(dateLayout, event.StartDate)
		if err != nil {
			continue
		}
		if start.Year() == year {
			kept = append(kept, event)
		}
	}
	return kept
}
