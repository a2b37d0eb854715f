// Package workspace implements the WorkspaceManager on the local filesystem.
package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/zerowrap"
	"github.com/google/uuid"

	"github.com/bnema/layerkit/internal/domain"
)

const (
	manifestFile = "package.json"
	layerDir     = "layer"
	privateDir   = ".installer"
)

// Manager implements the WorkspaceManager interface.
//
// Every workspace gets a unique directory below the base directory, so
// concurrent invocations on the same host never share files:
//
//	<base>/<layer>-<id>/layer/package.json   archived tree
//	<base>/<layer>-<id>/.installer/cache     private installer cache
//	<base>/<layer>-<id>/.installer/home      private installer home
//	<base>/<layer>-<id>/<layer>.zip          archive output
type Manager struct {
	baseDir string
	newID   func() string
}

// NewManager creates a workspace manager rooted at baseDir.
func NewManager(baseDir string, log zerowrap.Logger) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create workspace base directory %s: %w", baseDir, err)
	}

	log.Debug().
		Str(zerowrap.FieldLayer, "adapter").
		Str(zerowrap.FieldAdapter, "workspace").
		Str("base_dir", baseDir).
		Msg("workspace manager initialized")

	return &Manager{
		baseDir: baseDir,
		newID:   uuid.NewString,
	}, nil
}

// Prepare creates the workspace directories and writes the manifest.
func (m *Manager) Prepare(ctx context.Context, layerName string) (*domain.Workspace, error) {
	id := m.newID()
	root := filepath.Join(m.baseDir, layerName+"-"+id)

	ws := &domain.Workspace{
		ID:          id,
		LayerName:   layerName,
		Root:        root,
		Dir:         filepath.Join(root, layerDir),
		CacheDir:    filepath.Join(root, privateDir, "cache"),
		HomeDir:     filepath.Join(root, privateDir, "home"),
		ArchivePath: filepath.Join(root, layerName+".zip"),
	}

	for _, dir := range []string{ws.Dir, ws.CacheDir, ws.HomeDir} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrWorkspaceCreate, dir, err)
		}
	}

	if err := writeManifest(ws.Dir, domain.NewManifest(layerName)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWorkspaceCreate, err)
	}

	log := m.logger(ctx)
	log.Debug().
		Str("workspace_id", id).
		Str("dir", ws.Dir).
		Msg("workspace created")

	return ws, nil
}

// CleanupCache removes the installer's private cache and home.
func (m *Manager) CleanupCache(ctx context.Context, ws *domain.Workspace) error {
	for _, dir := range ws.PrivateDirs() {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
	}

	log := m.logger(ctx)
	log.Debug().Str("workspace_id", ws.ID).Msg("installer cache removed")
	return nil
}

// Teardown removes the whole workspace, archive included.
func (m *Manager) Teardown(ctx context.Context, ws *domain.Workspace) error {
	if ws.Root == "" {
		return fmt.Errorf("workspace %s has no root", ws.ID)
	}

	if err := os.RemoveAll(ws.Root); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", ws.Root, err)
	}

	log := m.logger(ctx)
	log.Debug().Str("workspace_id", ws.ID).Msg("workspace removed")
	return nil
}

func (m *Manager) logger(ctx context.Context) zerowrap.Logger {
	return zerowrap.FromCtx(zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "workspace",
	}))
}

func writeManifest(dir string, manifest domain.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	path := filepath.Join(dir, manifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0640); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
