// Package in defines the input ports exposed to transports.
package in

import (
	"context"

	"github.com/bnema/layerkit/internal/domain"
)

// LayerService builds and publishes layers.
type LayerService interface {
	// Build runs the full pipeline for a raw request. It never returns an
	// error: every failure is carried by the result.
	Build(ctx context.Context, packages, layerName string) *domain.BuildResult
}

// HistoryService reads the build ledger.
type HistoryService interface {
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.BuildRecord, error)
	Orphans(ctx context.Context, limit int) ([]domain.BuildRecord, error)
}
