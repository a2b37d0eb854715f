package domain

import "errors"

// Domain errors represent business-level errors that can occur in the pipeline.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Request errors
	ErrMissingPackages  = errors.New("missing required parameter: packages")
	ErrMissingLayerName = errors.New("missing required parameter: layerName")
	ErrInvalidLayerName = errors.New("invalid layer name")
	ErrInvalidSpec      = errors.New("invalid package spec")

	// Workspace errors
	ErrWorkspaceCreate = errors.New("failed to create workspace")

	// Install errors
	ErrInstallFailed = errors.New("package installation failed")

	// Archive errors
	ErrArchiveFailed = errors.New("archive creation failed")
	ErrLayerTooLarge = errors.New("layer exceeds maximum unzipped size")

	// Publish errors
	ErrUploadFailed       = errors.New("upload to blob storage failed")
	ErrRegistrationFailed = errors.New("layer version registration failed")

	// History errors
	ErrHistoryDisabled = errors.New("build history is disabled")

	// Config errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
