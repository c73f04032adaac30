package model

// Event is the canonical row every source (manual API, Asana, ICS feed)
// is normalized into. Dates and times are naive local wall clock carried
// as "2006-01-02" / "15:04" strings; no timezone is stored. End date and
// time may be empty, in which case exports derive start+1h on the fly.
type Event struct {
	ID             int     `json:"id" db:"id"`
	ExternalID     *string `json:"external_id,omitempty" db:"external_id"`
	Status         string  `json:"event_status" db:"event_status"`
	Ministry       string  `json:"ministry" db:"ministry"`
	Organizer      string  `json:"organizer" db:"organizer"`
	PublishTrigger string  `json:"publish_trigger" db:"publish_trigger"`
	Registration   string  `json:"registration" db:"registration"`
	Title          string  `json:"title" db:"title"`
	StartDate      string  `json:"start_date" db:"start_date"`
	StartTime      string  `json:"start_time" db:"start_time"`
	EndDate        string  `json:"end_date" db:"end_date"`
	EndTime        string  `json:"end_time" db:"end_time"`
	Location       string  `json:"location" db:"location"`
	Description    string  `json:"description" db:"description"`
	ImageURL       string  `json:"image_url" db:"image_url"`
	ImageData      []byte  `json:"-" db:"image_data"`
}

// TriggerUnpublish marks an event as canceled; the cancellation adjuster
// keys off this value.
const TriggerUnpublish = "Unpublish"

// ComparedFields is the set of columns the reconciler diffs when deciding
// whether an existing row needs an update. Image bytes are deliberately
// excluded: they are a cache of ImageURL and refreshed only when the URL
// changes.
func (e *Event) ComparedFields() []string {
	return []string{
		e.Status, e.Ministry, e.Organizer, e.PublishTrigger, e.Registration,
		e.Title, e.StartDate, e.StartTime, e.EndDate, e.EndTime,
		e.Location, e.Description, e.ImageURL,
	}
}

// Equivalent reports whether two events match on every reconciler-compared
// field.
func (e *Event) Equivalent(other *Event) bool {
	a, b := e.ComparedFields(), other.ComparedFields()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
