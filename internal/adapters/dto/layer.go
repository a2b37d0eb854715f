package dto

import (
	"net/http"
	"time"

	"github.com/bnema/layerkit/internal/domain"
)

// LayerSuccessMessage is returned with every successful build.
const LayerSuccessMessage = "Layer created successfully"

// LayerRequest is the invocation input. Packages is a single
// space-separated string of specs.
type LayerRequest struct {
	Packages  string `json:"packages"`
	LayerName string `json:"layerName"`
}

// LayerResponse is the success body.
type LayerResponse struct {
	Message      string `json:"message"`
	LayerArn     string `json:"layerArn"`
	LayerVersion int64  `json:"layerVersion"`
}

// FromBuildResult maps a pipeline result onto a status code and body.
func FromBuildResult(result *domain.BuildResult) (int, any) {
	status := result.StatusCode()

	if result.Failure != nil {
		return status, ErrorResponse{
			Error:   http.StatusText(status),
			Details: result.Failure.Error(),
		}
	}

	return status, LayerResponse{
		Message:      LayerSuccessMessage,
		LayerArn:     result.Version.LayerVersionArn,
		LayerVersion: result.Version.Version,
	}
}

// BuildRecord is the wire shape of a ledger entry.
type BuildRecord struct {
	ID              string    `json:"id"`
	LayerName       string    `json:"layerName"`
	Packages        []string  `json:"packages"`
	Status          string    `json:"status"`
	FailureKind     string    `json:"failureKind,omitempty"`
	FailedStage     string    `json:"failedStage,omitempty"`
	Error           string    `json:"error,omitempty"`
	Bucket          string    `json:"bucket,omitempty"`
	Key             string    `json:"key,omitempty"`
	ArchiveSize     int64     `json:"archiveSize,omitempty"`
	LayerVersionArn string    `json:"layerVersionArn,omitempty"`
	Version         int64     `json:"version,omitempty"`
	Orphaned        bool      `json:"orphaned"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
}

// FromBuildRecords converts ledger entries to their wire shape.
func FromBuildRecords(records []domain.BuildRecord) []BuildRecord {
	out := make([]BuildRecord, 0, len(records))
	for _, r := range records {
		out = append(out, BuildRecord{
			ID:              r.ID,
			LayerName:       r.LayerName,
			Packages:        r.Packages,
			Status:          r.Status,
			FailureKind:     string(r.FailureKind),
			FailedStage:     string(r.FailedStage),
			Error:           r.Error,
			Bucket:          r.Bucket,
			Key:             r.Key,
			ArchiveSize:     r.ArchiveSize,
			LayerVersionArn: r.LayerVersionArn,
			Version:         r.Version,
			Orphaned:        r.Orphaned,
			StartedAt:       r.StartedAt,
			FinishedAt:      r.FinishedAt,
		})
	}
	return out
}
