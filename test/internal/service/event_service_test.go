package service

import (
	"context"
	"testing"
	"time"

	"church-calendar/internal/model"
	"church-calendar/internal/service"
	apperrors "church-calendar/pkg/app_errors"
	mockrepos "church-calendar/test/internal/mocks/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func manualEvent(title, startDate, startTime string) *model.Event {
	return &model.Event{
		Title:     title,
		StartDate: startDate,
		StartTime: startTime,
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := mockrepos.NewEventRepositoryMock()
		svc := service.NewEventService(repo)

		event := manualEvent("Bake Sale", "2024-07-04", "10:00")
		event.Location = "  17 - Gym  "
		created := *event
		created.ID = 1
		created.Location = "17 Smith Street"

		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.Location == "17 Smith Street"
		})).Return(&created, nil).Once()

		got, err := svc.Create(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("AppliesCancellationMarkers", func(t *testing.T) {
		repo := mockrepos.NewEventRepositoryMock()
		svc := service.NewEventService(repo)

		event := manualEvent("Bake Sale", "2024-07-04", "10:00")
		event.PublishTrigger = "Unpublish"
		event.Description = "Cookies and pies."

		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.Title == "CANCELED: Bake Sale" &&
				e.Description == "THIS EVENT HAS BEEN CANCELED\n\nCookies and pies."
		})).Return(&model.Event{ID: 2}, nil).Once()

		_, err := svc.Create(ctx, event)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("RejectsMalformedDate", func(t *testing.T) {
		repo := mockrepos.NewEventRepositoryMock()
		svc := service.NewEventService(repo)

		_, err := svc.Create(ctx, manualEvent("Bad", "07/04/2024", "10:00"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsDanglingEndTime", func(t *testing.T) {
		repo := mockrepos.NewEventRepositoryMock()
		svc := service.NewEventService(repo)

		event := manualEvent("Bad", "2024-07-04", "10:00")
		event.EndTime = "11:00" // end date missing

		_, err := svc.Create(ctx, event)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestEventService_EventsOnDate(t *testing.T) {
	ctx := context.Background()
	repo := mockrepos.NewEventRepositoryMock()
	svc := service.NewEventService(repo)

	repo.On("List", mock.Anything).Return([]*model.Event{
		{ID: 1, Title: "A", StartDate: "2024-06-01", StartTime: "09:00"},
		{ID: 2, Title: "B", StartDate: "2024-06-02", StartTime: "09:00"},
	}, nil)

	t.Run("FiltersByDate", func(t *testing.T) {
		events, err := svc.EventsOnDate(ctx, "2024-06-01")

		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "A", events[0].Title)
	})

	t.Run("RejectsMalformedDate", func(t *testing.T) {
		_, err := svc.EventsOnDate(ctx, "June 1st")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestEventService_EventsForDay_UpcomingFallback(t *testing.T) {
	ctx := context.Background()
	repo := mockrepos.NewEventRepositoryMock()
	svc := service.NewEventService(repo)

	// Far-future dates keep the fixtures upcoming no matter when the
	// test runs; 2000-01-01 is always in the past.
	repo.On("List", mock.Anything).Return([]*model.Event{
		{ID: 1, Title: "Later", StartDate: "9999-03-01", StartTime: "10:00"},
		{ID: 2, Title: "Sooner", StartDate: "9999-01-01", StartTime: "08:00"},
		{ID: 3, Title: "Past", StartDate: "2000-01-01", StartTime: "08:00"},
		{ID: 4, Title: "Broken", StartDate: "junk", StartTime: "08:00"},
	}, nil)

	events, err := svc.EventsForDay(ctx, "9999-12-31")

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Title)
	assert.Equal(t, "Later", events[1].Title)
}

func TestEventService_CalendarMonth(t *testing.T) {
	ctx := context.Background()
	repo := mockrepos.NewEventRepositoryMock()
	svc := service.NewEventService(repo)

	repo.On("List", mock.Anything).Return([]*model.Event{
		{ID: 1, Title: "First Friday", StartDate: "2024-06-07", StartTime: "19:00"},
		{ID: 2, Title: "Other Month", StartDate: "2024-05-07", StartTime: "19:00"},
	}, nil)

	grid, err := svc.CalendarMonth(ctx, 2024, 6)

	require.NoError(t, err)
	assert.Equal(t, "June", grid.MonthName)
	// June 2024 starts on a Saturday and ends on a Sunday: six
	// Sunday-first weeks cover it.
	require.Len(t, grid.Weeks, 6)
	for _, week := range grid.Weeks {
		require.Len(t, week, 7)
		assert.Equal(t, time.Sunday, mustParseDay(t, week[0].Date))
	}

	assert.Equal(t, "2024-05-26", grid.Weeks[0][0].Date)
	assert.False(t, grid.Weeks[0][0].InMonth)

	// June 7 is the Friday of the second week.
	day := grid.Weeks[1][5]
	assert.Equal(t, "2024-06-07", day.Date)
	assert.True(t, day.InMonth)
	require.Len(t, day.Events, 1)
	assert.Equal(t, "First Friday", day.Events[0].Title)
}

func TestEventService_CalendarMonth_InvalidMonth(t *testing.T) {
	repo := mockrepos.NewEventRepositoryMock()
	svc := service.NewEventService(repo)

	_, err := svc.CalendarMonth(context.Background(), 2024, 13)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEventService_DeleteAll(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresConfirmation", func(t *testing.T) {
		repo := mockrepos.NewEventRepositoryMock()
		svc := service.NewEventService(repo)

		_, err := svc.DeleteAll(ctx, "")

		assert.ErrorIs(t, err, apperrors.ErrConfirmRequired)
		repo.AssertNotCalled(t, "DeleteAll", mock.Anything)
	})

	t.Run("Confirmed", func(t *testing.T) {
		repo := mockrepos.NewEventRepositoryMock()
		svc := service.NewEventService(repo)

		repo.On("DeleteAll", mock.Anything).Return(int64(12), nil).Once()

		deleted, err := svc.DeleteAll(ctx, "yes")

		require.NoError(t, err)
		assert.Equal(t, int64(12), deleted)
		repo.AssertExpectations(t)
	})
}

func mustParseDay(t *testing.T, date string) time.Weekday {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return parsed.Weekday()
}
