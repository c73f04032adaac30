package sync

import (
	"strings"

	"church-calendar/internal/model"
)

const (
	canceledPrefix = "CANCELED: "

	// CancellationBanner is the first line prepended to the description
	// of an unpublished event.
	CancellationBanner = "THIS EVENT HAS BEEN CANCELED"
)

// AdjustCancellation keeps the cancellation markers on title and
// description consistent with the publish trigger. It is a fixed point:
// applying it to an already adjusted (or already clean) event changes
// nothing, and flipping the trigger back recovers the original text.
func AdjustCancellation(event model.Event) model.Event {
	if event.PublishTrigger == model.TriggerUnpublish {
		if !strings.HasPrefix(event.Title, canceledPrefix) {
			event.Title = canceledPrefix + event.Title
		}
		if !strings.HasPrefix(strings.TrimLeft(event.Description, " \t\r\n"), CancellationBanner) {
			event.Description = CancellationBanner + "\n\n" + event.Description
		}
		return event
	}

	event.Title = strings.TrimPrefix(event.Title, canceledPrefix)
	if strings.HasPrefix(strings.TrimLeft(event.Description, " \t\r\n"), CancellationBanner) {
		lines := strings.Split(event.Description, "\n")
		if len(lines) > 0 && strings.TrimSpace(lines[0]) == CancellationBanner {
			rest := lines[1:]
			if len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
				rest = rest[1:]
			}
			event.Description = strings.TrimSpace(strings.Join(rest, "\n"))
		}
	}
	return event
}
