package handler

import (
	"fmt"
	"net/http"

	"church-calendar/internal/service"
	"church-calendar/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(service service.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

func (h *ExportHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/calendar.ics", h.DownloadICS)
	r.GET("/calendar.xml", h.DownloadXML)
}

func (h *ExportHandler) DownloadICS(c *gin.Context) {
	payload, filename, err := h.service.RenderICS(c)
	if err != nil {
		h.handleError(c, err, "DownloadICS")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/calendar", []byte(payload))
}

func (h *ExportHandler) DownloadXML(c *gin.Context) {
	payload, filename, err := h.service.RenderXML(c)
	if err != nil {
		h.handleError(c, err, "DownloadXML")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/xml", []byte(payload))
}

func (h *ExportHandler) handleError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").
		With(zap.String("operation", operation), zap.Error(err)).
		Error("Export failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
