package domain

import (
	"fmt"
	"net/http"
	"time"
)

// FailureKind classifies where a build stopped.
type FailureKind string

const (
	FailureInvalidRequest FailureKind = "InvalidRequest"
	FailureWorkspace      FailureKind = "WorkspaceFailure"
	FailureInstallation   FailureKind = "InstallationFailure"
	FailureArchive        FailureKind = "ArchiveFailure"
	FailureUpload         FailureKind = "UploadFailure"
	FailureRegistration   FailureKind = "RegistrationFailure"
)

// Stage is one step of the pipeline, in execution order.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePrepare  Stage = "prepare"
	StageInstall  Stage = "install"
	StageArchive  Stage = "archive"
	StageUpload   Stage = "upload"
	StageRegister Stage = "register"
)

// BuildError is the explicit failure value of a stage.
type BuildError struct {
	Kind  FailureKind
	Stage Stage
	Spec  string // Package spec being installed, if any.
	Err   error
}

// NewBuildError wraps err as a failure of the given stage.
func NewBuildError(kind FailureKind, stage Stage, err error) *BuildError {
	return &BuildError{Kind: kind, Stage: stage, Err: err}
}

func (e *BuildError) Error() string {
	if e.Spec != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Spec, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// StatusCode maps the failure kind onto an HTTP-style status.
func (e *BuildError) StatusCode() int {
	if e.Kind == FailureInvalidRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// BuildResult is the outcome of one pipeline run: exactly one of Version or
// Failure is set.
type BuildResult struct {
	ID         string
	LayerName  string
	Packages   []string
	Version    *LayerVersion
	Failure    *BuildError
	Archive    *ArchiveStats
	Uploaded   bool // Archive reached the blob store.
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the run produced a layer version.
func (r *BuildResult) Succeeded() bool {
	return r.Failure == nil && r.Version != nil
}

// Orphaned reports whether the run left an uploaded archive that no layer
// version references.
func (r *BuildResult) Orphaned() bool {
	return r.Uploaded && r.Failure != nil
}

// StatusCode returns 200 on success and the failure's status otherwise.
func (r *BuildResult) StatusCode() int {
	if r.Failure != nil {
		return r.Failure.StatusCode()
	}
	return http.StatusOK
}

// Duration returns how long the run took.
func (r *BuildResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// BuildRecord is a persisted summary of a BuildResult.
type BuildRecord struct {
	ID              string
	LayerName       string
	Packages        []string
	Status          string
	FailureKind     FailureKind
	FailedStage     Stage
	Error           string
	Bucket          string
	Key             string
	ArchiveSize     int64
	LayerVersionArn string
	Version         int64
	Orphaned        bool
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Build record statuses.
const (
	BuildStatusSucceeded = "succeeded"
	BuildStatusFailed    = "failed"
)

// HistoryFilter narrows a history query.
type HistoryFilter struct {
	LayerName    string
	OrphanedOnly bool
	Limit        int
}
