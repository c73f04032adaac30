package handler

import (
	"net/http"

	"church-calendar/internal/service"
	apperrors "church-calendar/pkg/app_errors"
	"church-calendar/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(service service.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

func (h *SyncHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/trigger-asana", h.TriggerAsana)
	r.GET("/import_ics", h.ImportICS)
	r.POST("/import_ics", h.ImportICS)
	r.GET("/compress_images", h.CompressImages)
}

func (h *SyncHandler) TriggerAsana(c *gin.Context) {
	summary, err := h.service.SyncAsana(c)
	if err != nil {
		h.handleError(c, err, "TriggerAsana")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "summary": summary})
}

func (h *SyncHandler) ImportICS(c *gin.Context) {
	summary, err := h.service.ImportICS(c, c.Query("url"))
	if err != nil {
		h.handleError(c, err, "ImportICS")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "summary": summary})
}

func (h *SyncHandler) CompressImages(c *gin.Context) {
	rewritten, err := h.service.CompressImages(c)
	if err != nil {
		h.handleError(c, err, "CompressImages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "rewritten": rewritten})
}

func (h *SyncHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid url parameter"})
	default:
		log.Error("Sync failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream fetch failed"})
	}
}
