package export

import (
	"fmt"
	"strings"
	"time"

	"church-calendar/internal/model"

	"github.com/google/uuid"
)

const icsStampLayout = "20060102T150405Z"
const icsLocalLayout = "20060102T150405"

// RenderICS renders the events as a minimal RFC 5545 calendar. Events
// whose start does not parse are skipped silently.
//
// TODO: derive UIDs from external_id. Minting a fresh UID per render
// makes subscribed clients treat every event as new on each refresh.
func RenderICS(events []*model.Event, now time.Time) string {
	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//Church Calendar//EN")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("METHOD:PUBLISH")

	stamp := now.UTC().Format(icsStampLayout)
	for _, event := range events {
		start, end, ok := eventSpan(event)
		if !ok {
			continue
		}

		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + uuid.NewString())
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART:" + start.Format(icsLocalLayout))
		writeLine("DTEND:" + end.Format(icsLocalLayout))
		writeLine("SUMMARY:" + escapeText(event.Title))
		if event.Description != "" {
			writeLine("DESCRIPTION:" + escapeText(event.Description))
		}
		if event.Location != "" {
			writeLine("LOCATION:" + escapeText(event.Location))
		}
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return b.String()
}

// FileNameICS names the download attachment for a given year.
func FileNameICS(year int) string {
	return fmt.Sprintf("calendar_%d.ics", year)
}

func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
