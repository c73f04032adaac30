package service

import (
	"context"
	"errors"
	"time"

	"church-calendar/internal/asana"
	"church-calendar/internal/cache"
	"church-calendar/internal/icsimport"
	"church-calendar/internal/images"
	"church-calendar/internal/model"
	"church-calendar/internal/repository"
	"church-calendar/internal/sync"
	apperrors "church-calendar/pkg/app_errors"
	"church-calendar/pkg/logger"

	"go.uber.org/zap"
)

// TaskSource abstracts the Asana client for the sync pipeline.
type TaskSource interface {
	FetchProjectTasks(ctx context.Context) ([]asana.Task, error)
}

// FeedImporter abstracts the ICS feed downloader/parser.
type FeedImporter interface {
	Fetch(ctx context.Context, feedURL string) ([]icsimport.Event, error)
}

// ImageFetcher abstracts the per-event image download.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) []byte
}

// SyncSummary counts what one reconciliation pass did.
type SyncSummary struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Dropped  int `json:"dropped"`
	Failed   int `json:"failed"`
}

func (s SyncSummary) wrote() bool {
	return s.Inserted+s.Updated > 0
}

type SyncService interface {
	// SyncAsana runs one full reconciliation pass over the Asana
	// project. Missing credentials short-circuit with a warning and an
	// empty summary rather than an error.
	SyncAsana(ctx context.Context) (*SyncSummary, error)
	ImportICS(ctx context.Context, feedURL string) (*SyncSummary, error)
	// CompressImages is the on-demand maintenance pass over stored
	// image payloads; it returns how many were rewritten.
	CompressImages(ctx context.Context) (int, error)
}

type SyncServiceImpl struct {
	repo        repository.EventRepository
	reconciler  *sync.Reconciler
	tasks       TaskSource
	feeds       FeedImporter
	imageSource ImageFetcher
	fieldMap    asana.FieldMap
	exportCache cache.ExportCacheManager
	log         *zap.Logger
	now         func() time.Time
}

func NewSyncService(
	repo repository.EventRepository,
	tasks TaskSource,
	feeds FeedImporter,
	imageSource ImageFetcher,
	fieldMap asana.FieldMap,
	exportCache cache.ExportCacheManager,
) SyncService {
	return &SyncServiceImpl{
		repo:        repo,
		reconciler:  sync.NewReconciler(repo),
		tasks:       tasks,
		feeds:       feeds,
		imageSource: imageSource,
		fieldMap:    fieldMap,
		exportCache: exportCache,
		log:         logger.WithComponent("sync"),
		now:         time.Now,
	}
}

func (s *SyncServiceImpl) SyncAsana(ctx context.Context) (*SyncSummary, error) {
	tasks, err := s.tasks.FetchProjectTasks(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingAsanaAuth) {
			s.log.Warn("asana sync skipped: credentials not configured")
			return &SyncSummary{}, nil
		}
		return nil, err
	}

	now := s.now()
	summary := &SyncSummary{Fetched: len(tasks)}
	for _, task := range tasks {
		draft := sync.DraftFromAsanaTask(task, s.fieldMap, now)
		if draft == nil {
			summary.Dropped++
			continue
		}
		// Scope-limiting policy: only current-year events are kept, and
		// the year is re-resolved on every pass.
		if !sync.WithinYear(draft, now.Year()) {
			summary.Dropped++
			continue
		}
		s.applyDraft(ctx, draft, summary, true)
	}

	s.finishPass(ctx, "asana", summary)
	return summary, nil
}

func (s *SyncServiceImpl) ImportICS(ctx context.Context, feedURL string) (*SyncSummary, error) {
	if feedURL == "" {
		return nil, apperrors.ErrInvalidInput
	}

	feedEvents, err := s.feeds.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	summary := &SyncSummary{Fetched: len(feedEvents)}
	for _, feedEvent := range feedEvents {
		draft := sync.DraftFromICSEvent(feedEvent)
		if draft.ExternalID == nil {
			summary.Dropped++
			continue
		}
		s.applyDraft(ctx, draft, summary, false)
	}

	s.finishPass(ctx, "ics", summary)
	return summary, nil
}

// applyDraft pushes one normalized draft through adjust → reconcile →
// image cache. Per-item failures are logged and counted, never
// propagated: one bad record must not abort the rest of the pass.
func (s *SyncServiceImpl) applyDraft(ctx context.Context, draft *model.Event, summary *SyncSummary, withImage bool) {
	adjusted := sync.AdjustCancellation(*draft)

	result, err := s.reconciler.Apply(ctx, &adjusted)
	if err != nil {
		s.log.Error("reconcile failed",
			zap.Stringp("external_id", draft.ExternalID),
			zap.String("title", draft.Title),
			zap.Error(err),
		)
		summary.Failed++
		return
	}

	switch result.Outcome {
	case sync.OutcomeInserted:
		summary.Inserted++
	case sync.OutcomeUpdated:
		summary.Updated++
	default:
		summary.Skipped++
	}

	if withImage {
		s.refreshImage(ctx, result)
	}
}

// refreshImage caches image bytes for fresh inserts and for updates that
// changed the image URL. A failed download stores the placeholder via
// the fetcher, so this never fails the item.
func (s *SyncServiceImpl) refreshImage(ctx context.Context, result *sync.ApplyResult) {
	event := result.Event
	if event.ImageURL == "" {
		return
	}
	if result.Outcome == sync.OutcomeSkipped {
		return
	}
	if result.Outcome == sync.OutcomeUpdated && result.Previous != nil &&
		result.Previous.ImageURL == event.ImageURL {
		return
	}

	data := s.imageSource.Fetch(ctx, event.ImageURL)
	if data == nil {
		return
	}
	if err := s.repo.SetImage(ctx, event.ID, data); err != nil {
		s.log.Error("image store failed", zap.Int("event_id", event.ID), zap.Error(err))
	}
}

func (s *SyncServiceImpl) finishPass(ctx context.Context, source string, summary *SyncSummary) {
	if summary.wrote() {
		if err := s.exportCache.Invalidate(ctx); err != nil {
			s.log.Error("export cache invalidation failed", zap.Error(err))
		}
	}
	s.log.Info("reconciliation pass finished",
		zap.String("source", source),
		zap.Int("fetched", summary.Fetched),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("skipped", summary.Skipped),
		zap.Int("dropped", summary.Dropped),
		zap.Int("failed", summary.Failed),
	)
}

func (s *SyncServiceImpl) CompressImages(ctx context.Context) (int, error) {
	stored, err := s.repo.ListImages(ctx)
	if err != nil {
		return 0, err
	}

	rewritten := 0
	for _, img := range stored {
		compressed, changed := images.Compress(img.Data)
		if !changed {
			continue
		}
		if err := s.repo.SetImage(ctx, img.EventID, compressed); err != nil {
			s.log.Error("compressed image store failed",
				zap.Int("event_id", img.EventID), zap.Error(err))
			continue
		}
		rewritten++
	}

	s.log.Info("image compression pass finished",
		zap.Int("scanned", len(stored)),
		zap.Int("rewritten", rewritten),
	)
	return rewritten, nil
}
