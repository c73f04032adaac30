package sync

import (
	"context"
	"errors"

	"church-calendar/internal/model"
	"church-calendar/internal/repository"
	apperrors "church-calendar/pkg/app_errors"
	"church-calendar/pkg/logger"

	"go.uber.org/zap"
)

type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
)

// ApplyResult reports what the reconciler did with a draft. Previous is
// the row as it stood before an update (nil for inserts and skips);
// callers use it to decide whether the image cache needs a refresh.
type ApplyResult struct {
	Outcome  Outcome
	Event    *model.Event
	Previous *model.Event
}

// Reconciler folds normalized drafts into the event store: first sight
// of an external id inserts, a changed row updates every compared field
// at once, an unchanged row writes nothing.
type Reconciler struct {
	repo repository.EventRepository
	log  *zap.Logger
}

func NewReconciler(repo repository.EventRepository) *Reconciler {
	return &Reconciler{
		repo: repo,
		log:  logger.WithComponent("reconciler"),
	}
}

func (r *Reconciler) Apply(ctx context.Context, draft *model.Event) (*ApplyResult, error) {
	if draft == nil || draft.ExternalID == nil || *draft.ExternalID == "" {
		return nil, apperrors.ErrInvalidInput
	}

	existing, err := r.repo.FindByExternalID(ctx, *draft.ExternalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			created, err := r.repo.Create(ctx, draft)
			if err != nil {
				return nil, err
			}
			r.log.Info("inserted event",
				zap.String("external_id", *draft.ExternalID),
				zap.String("title", draft.Title),
			)
			return &ApplyResult{Outcome: OutcomeInserted, Event: created}, nil
		}
		return nil, err
	}

	if existing.Equivalent(draft) {
		return &ApplyResult{Outcome: OutcomeSkipped, Event: existing}, nil
	}

	updated, err := r.repo.UpdateByExternalID(ctx, draft)
	if err != nil {
		return nil, err
	}
	r.log.Info("updated event",
		zap.String("external_id", *draft.ExternalID),
		zap.String("title", draft.Title),
	)
	return &ApplyResult{Outcome: OutcomeUpdated, Event: updated, Previous: existing}, nil
}
