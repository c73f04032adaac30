package service

import (
	"context"
	"sort"
	"time"

	"church-calendar/internal/model"
	"church-calendar/internal/repository"
	"church-calendar/internal/sync"
	apperrors "church-calendar/pkg/app_errors"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	EventsOnDate(ctx context.Context, date string) ([]*model.Event, error)
	// EventsForDay returns the events on the given date, falling back to
	// every upcoming event in start order when that date is empty.
	EventsForDay(ctx context.Context, date string) ([]*model.Event, error)
	CalendarMonth(ctx context.Context, year, month int) (*model.CalendarMonth, error)
	GetImage(ctx context.Context, id int) ([]byte, error)
	DeleteAll(ctx context.Context, confirm string) (int64, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
	now  func() time.Time
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo, now: time.Now}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

// Create handles manual submissions. These carry no reconciliation
// identity even when an external id is supplied, so every call is a pure
// insert. Cancellation markers are applied up front to keep the
// title/description invariant independent of the event's source.
func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if event.Title == "" || event.StartDate == "" || event.StartTime == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if _, err := time.Parse(dateLayout, event.StartDate); err != nil {
		return nil, apperrors.ErrInvalidInput
	}
	if _, err := time.Parse(timeLayout, event.StartTime); err != nil {
		return nil, apperrors.ErrInvalidInput
	}
	if (event.EndDate == "") != (event.EndTime == "") {
		return nil, apperrors.ErrInvalidInput
	}
	if event.EndDate != "" {
		if _, err := time.Parse(dateTimeLayout, event.EndDate+" "+event.EndTime); err != nil {
			return nil, apperrors.ErrInvalidInput
		}
	}

	adjusted := sync.AdjustCancellation(*event)
	adjusted.Location = sync.NormalizeLocation(adjusted.Location)
	return s.repo.Create(ctx, &adjusted)
}

func (s *EventServiceImpl) EventsOnDate(ctx context.Context, date string) ([]*model.Event, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperrors.ErrInvalidInput
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*model.Event, 0)
	for _, event := range events {
		if event.StartDate == date {
			matched = append(matched, event)
		}
	}
	return matched, nil
}

func (s *EventServiceImpl) EventsForDay(ctx context.Context, date string) ([]*model.Event, error) {
	matched, err := s.EventsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(matched) > 0 {
		return matched, nil
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(dateLayout)
	upcoming := make([]*model.Event, 0)
	for _, event := range events {
		if _, err := time.Parse(dateLayout, event.StartDate); err != nil {
			continue
		}
		if event.StartDate >= today {
			upcoming = append(upcoming, event)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return sortKey(upcoming[i]).Before(sortKey(upcoming[j]))
	})
	return upcoming, nil
}

// sortKey orders events by start instant; events whose time does not
// parse sort last.
func sortKey(event *model.Event) time.Time {
	t, err := time.Parse(dateTimeLayout, event.StartDate+" "+event.StartTime)
	if err != nil {
		return time.Unix(1<<62, 0)
	}
	return t
}

func (s *EventServiceImpl) CalendarMonth(ctx context.Context, year, month int) (*model.CalendarMonth, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidInput
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]*model.Event)
	for _, event := range events {
		if _, err := time.Parse(dateLayout, event.StartDate); err != nil {
			continue
		}
		byDate[event.StartDate] = append(byDate[event.StartDate], event)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	today := s.now().Format(dateLayout)

	// Grid weeks start on Sunday, padded with the neighboring months.
	cursor := first.AddDate(0, 0, -int(first.Weekday()))

	grid := &model.CalendarMonth{
		Year:      year,
		Month:     month,
		MonthName: first.Month().String(),
	}
	for !cursor.After(last) {
		week := make(model.CalendarWeek, 0, 7)
		for i := 0; i < 7; i++ {
			date := cursor.Format(dateLayout)
			inMonth := cursor.Month() == first.Month()
			day := model.CalendarDay{
				Date:    date,
				Day:     cursor.Day(),
				InMonth: inMonth,
				Today:   date == today,
				Events:  []*model.Event{},
			}
			if inMonth {
				if dayEvents, ok := byDate[date]; ok {
					day.Events = dayEvents
				}
			}
			week = append(week, day)
			cursor = cursor.AddDate(0, 0, 1)
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid, nil
}

func (s *EventServiceImpl) GetImage(ctx context.Context, id int) ([]byte, error) {
	return s.repo.GetImage(ctx, id)
}

func (s *EventServiceImpl) DeleteAll(ctx context.Context, confirm string) (int64, error) {
	if confirm != "yes" {
		return 0, apperrors.ErrConfirmRequired
	}
	return s.repo.DeleteAll(ctx)
}
