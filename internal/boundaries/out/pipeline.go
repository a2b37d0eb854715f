// Package out defines the output ports the layer pipeline depends on.
package out

import (
	"context"

	"github.com/bnema/layerkit/internal/domain"
)

// WorkspaceManager owns the per-invocation working directories.
type WorkspaceManager interface {
	// Prepare creates a private workspace for layerName and seeds its manifest.
	// Creating over an existing directory is not an error.
	Prepare(ctx context.Context, layerName string) (*domain.Workspace, error)

	// CleanupCache removes the installer's private cache and home so they are
	// not archived.
	CleanupCache(ctx context.Context, ws *domain.Workspace) error

	// Teardown removes the workspace and its archive. Best-effort.
	Teardown(ctx context.Context, ws *domain.Workspace) error
}

// PackageInstaller installs one package spec into a workspace.
type PackageInstaller interface {
	// Install runs the installer for spec with ws.Dir as working directory and
	// the workspace's private home and cache. Any non-zero exit is an error.
	Install(ctx context.Context, spec string, ws *domain.Workspace) error
}

// ArchiveBuilder compresses a directory tree into a single archive file.
type ArchiveBuilder interface {
	// Build writes every file under root into outputPath, with paths relative
	// to root, streaming entries straight to disk.
	Build(ctx context.Context, root, outputPath string) (*domain.ArchiveStats, error)
}

// BlobStore persists archives to durable storage.
type BlobStore interface {
	// Upload streams the file at localPath to ref, overwriting any existing
	// object. The content length is taken from the file size before the
	// transfer starts. Returns the number of bytes sent.
	Upload(ctx context.Context, localPath string, ref domain.StorageReference) (int64, error)
}

// LayerRegistry creates versions of named layers.
type LayerRegistry interface {
	// Publish registers a new version referencing a stored archive.
	Publish(ctx context.Context, req domain.PublishRequest) (*domain.LayerVersion, error)
}

// BuildRecorder persists build outcomes.
type BuildRecorder interface {
	// Record stores one build outcome.
	Record(ctx context.Context, rec domain.BuildRecord) error

	// List returns records matching filter, newest first.
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.BuildRecord, error)

	// Close releases the underlying store.
	Close() error
}
