package icsimport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"church-calendar/pkg/logger"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// Event is one VEVENT lifted out of a feed, still in source shape.
// Times are whatever wall clock the feed declared; date-only starts come
// back at midnight.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	HasEnd      bool
}

type Importer struct {
	client *http.Client
	log    *zap.Logger
}

func NewImporter() *Importer {
	return &Importer{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger.WithComponent("icsimport"),
	}
}

// Fetch downloads and parses one ICS feed. VEVENTs missing a UID or a
// parsable DTSTART are skipped individually; a feed that cannot be
// fetched or parsed at all is an error.
func (i *Importer) Fetch(ctx context.Context, feedURL string) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icsimport: unexpected status %s", resp.Status)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0)
	skipped := 0
	for _, ve := range cal.Events() {
		ev, ok := liftVEvent(ve)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}

	i.log.Info("parsed ics feed",
		zap.Int("events", len(events)),
		zap.Int("skipped", skipped),
	)
	return events, nil
}

func liftVEvent(ve *ical.VEvent) (Event, bool) {
	var ev Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, false
	}
	ev.UID = uid.Value

	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return ev, false
	}
	ev.Start = start

	if end, err := ve.GetEndAt(); err == nil && !end.IsZero() {
		ev.End = end
		ev.HasEnd = true
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}

	return ev, true
}
