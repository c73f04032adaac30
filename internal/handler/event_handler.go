package handler

import (
	"net/http"
	"strconv"
	"time"

	"church-calendar/internal/model"
	"church-calendar/internal/service"
	apperrors "church-calendar/pkg/app_errors"
	"church-calendar/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/events", h.List)
	r.POST("/api/events", h.Create)
	r.GET("/api/events/date/:date", h.EventsOnDate)
	r.GET("/api/list_events/:date", h.EventsForDay)
	r.GET("/api/calendar", h.CalendarMonth)
	r.GET("/event_image/:id", h.EventImage)
	r.GET("/delete_all_events", h.DeleteAll)
}

// CreateEventRequest is a manual event submission.
type CreateEventRequest struct {
	ExternalID     *string `json:"external_id"`
	Status         string  `json:"event_status"`
	Ministry       string  `json:"ministry"`
	Organizer      string  `json:"organizer"`
	PublishTrigger string  `json:"publish_trigger"`
	Registration   string  `json:"registration"`
	Title          string  `json:"title" binding:"required"`
	StartDate      string  `json:"start_date" binding:"required"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndDate        string  `json:"end_date"`
	EndTime        string  `json:"end_time"`
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	ImageURL       string  `json:"image_url"`
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	event := &model.Event{
		ExternalID:     req.ExternalID,
		Status:         req.Status,
		Ministry:       req.Ministry,
		Organizer:      req.Organizer,
		PublishTrigger: req.PublishTrigger,
		Registration:   req.Registration,
		Title:          req.Title,
		StartDate:      req.StartDate,
		StartTime:      req.StartTime,
		EndDate:        req.EndDate,
		EndTime:        req.EndTime,
		Location:       req.Location,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
	}
	created, err := h.service.Create(c, event)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "event": created})
}

func (h *EventHandler) EventsOnDate(c *gin.Context) {
	events, err := h.service.EventsOnDate(c, c.Param("date"))
	if err != nil {
		h.handleError(c, err, "EventsOnDate")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) EventsForDay(c *gin.Context) {
	events, err := h.service.EventsForDay(c, c.Param("date"))
	if err != nil {
		h.handleError(c, err, "EventsForDay")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) CalendarMonth(c *gin.Context) {
	// Bad or missing year/month fall back to the current month rather
	// than erroring; the calendar widget polls this blindly.
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", ""))
	if err != nil || year < 1 {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", ""))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	grid, err := h.service.CalendarMonth(c, year, month)
	if err != nil {
		h.handleError(c, err, "CalendarMonth")
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *EventHandler) EventImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}
	data, err := h.service.GetImage(c, id)
	if err != nil {
		h.handleError(c, err, "EventImage")
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

func (h *EventHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.service.DeleteAll(c, c.Query("confirm"))
	if err != nil {
		h.handleError(c, err, "DeleteAll")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "deleted": deleted})
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == apperrors.ErrImageNotFound:
		log.Warn("Image not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event has no image"})
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
	case err == apperrors.ErrConfirmRequired:
		log.Warn("Missing confirmation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pass confirm=yes to delete all events"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
