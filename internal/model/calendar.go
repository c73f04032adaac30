package model

// CalendarDay is one cell of the month grid. Days from the neighboring
// months that pad the first and last week carry InMonth=false and no
// events.
type CalendarDay struct {
	Date    string   `json:"date"`
	Day     int      `json:"day"`
	InMonth bool     `json:"in_month"`
	Today   bool     `json:"today"`
	Events  []*Event `json:"events"`
}

// CalendarWeek always holds seven days, Sunday first.
type CalendarWeek []CalendarDay

type CalendarMonth struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	MonthName string         `json:"month_name"`
	Weeks     []CalendarWeek `json:"weeks"`
}
