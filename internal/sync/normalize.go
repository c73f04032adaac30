package sync

import (
	"strings"
	"time"

	"church-calendar/internal/asana"
	"church-calendar/internal/icsimport"
	"church-calendar/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	defaultStartTime = "09:00"
	defaultEndTime   = "10:00"

	summaryWordLimit = 8
)

// locationAliases rewrites the shorthand campus addresses people type
// into Asana. Order matters: the first matching prefix wins, so "17 -"
// is checked before the bare-number prefixes.
var locationAliases = []struct {
	prefix  string
	address string
}{
	{"17 -", "17 Smith Street"},
	{"163", "163 Livingston Street"},
	{"392", "392 Fulton Street"},
	{"190", "190 Livingston Street"},
}

// NormalizeLocation trims the raw location and applies the campus alias
// table. Unrecognized locations pass through trimmed but otherwise
// unchanged.
func NormalizeLocation(raw string) string {
	location := strings.TrimSpace(raw)
	for _, alias := range locationAliases {
		if strings.HasPrefix(location, alias.prefix) {
			return alias.address
		}
	}
	return location
}

// RewriteDropboxURL turns a Dropbox share page link into a direct
// content link.
func RewriteDropboxURL(raw string) string {
	if strings.Contains(raw, "dropbox.com") && strings.Contains(raw, "dl=0") {
		return strings.Replace(raw, "dl=0", "raw=1", 1)
	}
	return raw
}

// TruncateWords cuts a string at a word boundary after limit words,
// appending an ellipsis marker when anything was dropped.
func TruncateWords(s string, limit int) string {
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	return strings.Join(words[:limit], " ") + "..."
}

// DraftFromAsanaTask maps one Asana task into a canonical event draft.
// Tasks without a GID produce nil. Tasks without a due date land on
// today; start/end times default to 09:00/10:00 since Asana due dates
// carry no time of day.
func DraftFromAsanaTask(task asana.Task, fields asana.FieldMap, now time.Time) *model.Event {
	if task.GID == "" {
		return nil
	}

	title := task.Name
	if title == "" {
		title = "Unnamed Task"
	}

	startDate := task.DueOn
	if startDate == "" {
		startDate = now.Format(dateLayout)
	}

	ministry := task.CustomFieldValue(fields.Ministry)
	organizer := ministry
	if organizer == "" {
		organizer = "Asana Import"
	}

	status := task.CustomFieldValue(fields.Status)
	if status == "" {
		status = "Approved"
	}
	trigger := task.CustomFieldValue(fields.Trigger)
	if trigger == "" {
		trigger = "Publish"
	}

	description := task.CustomFieldValue(fields.Content)
	if description == "" {
		description = title
	}

	externalID := task.GID
	return &model.Event{
		ExternalID:     &externalID,
		Status:         status,
		Ministry:       ministry,
		Organizer:      organizer,
		PublishTrigger: trigger,
		Registration:   task.CustomFieldValue(fields.Registration),
		Title:          title,
		StartDate:      startDate,
		StartTime:      defaultStartTime,
		EndDate:        startDate,
		EndTime:        defaultEndTime,
		Location:       NormalizeLocation(task.CustomFieldValue(fields.Locations)),
		Description:    SanitizeHTML(description, false),
		ImageURL:       RewriteDropboxURL(task.CustomFieldValue(fields.Graphics)),
	}
}

// DraftFromICSEvent maps one imported VEVENT into a canonical event
// draft. Summaries are truncated to the first eight words for the title;
// the description falls back to the full summary. Imported descriptions
// get image tags stripped on top of the usual sanitization.
func DraftFromICSEvent(ev icsimport.Event) *model.Event {
	title := TruncateWords(ev.Summary, summaryWordLimit)
	if title == "" {
		title = "Untitled Event"
	}

	description := ev.Description
	if description == "" {
		description = ev.Summary
	}

	draft := &model.Event{
		Status:         "Approved",
		Organizer:      "ICS Import",
		PublishTrigger: "Publish",
		Title:          title,
		StartDate:      ev.Start.Format(dateLayout),
		StartTime:      ev.Start.Format(timeLayout),
		Location:       NormalizeLocation(ev.Location),
		Description:    SanitizeHTML(description, true),
	}
	if ev.UID != "" {
		uid := ev.UID
		draft.ExternalID = &uid
	}
	if ev.HasEnd {
		draft.EndDate = ev.End.Format(dateLayout)
		draft.EndTime = ev.End.Format(timeLayout)
	}
	return draft
}

// WithinYear reports whether the draft's start date falls in the given
// calendar year. Asana drafts outside the current year are dropped
// before reconciliation; the check runs on every pass because "current
// year" moves.
func WithinYear(event *model.Event, year int) bool {
	start, err := time.Parse(dateLayout, event.StartDate)
	if err != nil {
		return false
	}
	return start.Year() == year
}
