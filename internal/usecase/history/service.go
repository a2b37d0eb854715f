// Package history implements the read side of the build ledger.
package history

import (
	"context"

	"github.com/bnema/zerowrap"

	"github.com/bnema/layerkit/internal/boundaries/out"
	"github.com/bnema/layerkit/internal/domain"
)

// Service implements the HistoryService interface.
type Service struct {
	recorder out.BuildRecorder
}

// NewService creates a history service. recorder may be nil when the ledger
// is disabled.
func NewService(recorder out.BuildRecorder) *Service {
	return &Service{recorder: recorder}
}

// List returns recorded builds matching filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.BuildRecord, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "ListBuilds",
	})
	log := zerowrap.FromCtx(ctx)

	if s.recorder == nil {
		return nil, domain.ErrHistoryDisabled
	}

	records, err := s.recorder.List(ctx, filter)
	if err != nil {
		return nil, log.WrapErr(err, "failed to list builds")
	}

	log.Debug().Int("count", len(records)).Msg("builds listed")
	return records, nil
}

// Orphans returns builds whose archive was uploaded but never registered.
func (s *Service) Orphans(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	return s.List(ctx, domain.HistoryFilter{OrphanedOnly: true, Limit: limit})
}
