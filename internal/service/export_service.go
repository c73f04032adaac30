package service

import (
	"context"
	"time"

	"church-calendar/internal/cache"
	"church-calendar/internal/export"
	"church-calendar/internal/model"
	"church-calendar/internal/repository"
	"church-calendar/pkg/logger"

	"go.uber.org/zap"
)

type ExportService interface {
	RenderICS(ctx context.Context) (payload, filename string, err error)
	RenderXML(ctx context.Context) (payload, filename string, err error)
}

type ExportServiceImpl struct {
	repo        repository.EventRepository
	exportCache cache.ExportCacheManager
	log         *zap.Logger
	now         func() time.Time
}

func NewExportService(repo repository.EventRepository, exportCache cache.ExportCacheManager) ExportService {
	return &ExportServiceImpl{
		repo:        repo,
		exportCache: exportCache,
		log:         logger.WithComponent("export"),
		now:         time.Now,
	}
}

func (s *ExportServiceImpl) RenderICS(ctx context.Context) (string, string, error) {
	year := s.now().Year()
	payload, err := s.render(ctx, cache.FormatICS, year, export.RenderICS)
	return payload, export.FileNameICS(year), err
}

func (s *ExportServiceImpl) RenderXML(ctx context.Context) (string, string, error) {
	year := s.now().Year()
	payload, err := s.render(ctx, cache.FormatXML, year, export.RenderXML)
	return payload, export.FileNameXML(year), err
}

// render serves the export from Redis when a fresh copy is cached and
// otherwise renders the current-year events and caches the result.
// Cache failures degrade to rendering, never to an error.
func (s *ExportServiceImpl) render(
	ctx context.Context,
	format string,
	year int,
	renderFn func([]*model.Event, time.Time) string,
) (string, error) {
	if cached, ok, err := s.exportCache.GetRendered(ctx, format, year); err != nil {
		s.log.Warn("export cache read failed", zap.String("format", format), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	events, err := s.repo.List(ctx)
	if err != nil {
		return "", err
	}

	payload := renderFn(export.FilterYear(events, year), s.now())

	if err := s.exportCache.StoreRendered(ctx, format, year, payload); err != nil {
		s.log.Warn("export cache write failed", zap.String("format", format), zap.Error(err))
	}
	return payload, nil
}
