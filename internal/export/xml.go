package export

import (
	"encoding/xml"
	"fmt"
	"time"

	"church-calendar/internal/model"

	"github.com/google/uuid"
)

const xmlInstantLayout = "2006-01-02T15:04:05"

type xmlEvent struct {
	UID         string `xml:"uid"`
	DTStamp     string `xml:"dtstamp"`
	DTStart     string `xml:"dtstart"`
	DTEnd       string `xml:"dtend"`
	Summary     string `xml:"summary"`
	Description string `xml:"description,omitempty"`
	Location    string `xml:"location,omitempty"`
}

type xmlCalendar struct {
	XMLName xml.Name   `xml:"calendar"`
	Events  []xmlEvent `xml:"event"`
}

// RenderXML mirrors the ICS export as a custom XML document with the
// same skip-unparsable and end-defaulting behavior (and the same
// fresh-UID-per-render quirk).
func RenderXML(events []*model.Event, now time.Time) string {
	stamp := now.UTC().Format(xmlInstantLayout) + "Z"

	doc := xmlCalendar{Events: make([]xmlEvent, 0, len(events))}
	for _, event := range events {
		start, end, ok := eventSpan(event)
		if !ok {
			continue
		}
		doc.Events = append(doc.Events, xmlEvent{
			UID:         uuid.NewString(),
			DTStamp:     stamp,
			DTStart:     start.Format(xmlInstantLayout),
			DTEnd:       end.Format(xmlInstantLayout),
			Summary:     event.Title,
			Description: event.Description,
			Location:    event.Location,
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		// Marshaling a struct of strings cannot fail in practice.
		return xml.Header + "<calendar></calendar>"
	}
	return xml.Header + string(body)
}

// FileNameXML names the download attachment for a given year.
func FileNameXML(year int) string {
	return fmt.Sprintf("calendar_%d.xml", year)
}
