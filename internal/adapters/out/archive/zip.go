// Package archive implements the ArchiveBuilder using zip with maximum
// deflate compression.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bnema/zerowrap"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/bnema/layerkit/internal/domain"
)

// Config configures the archive layout.
type Config struct {
	// RootPrefix is prepended to every entry name, e.g. "nodejs" so entries
	// land under nodejs/node_modules once extracted. Empty keeps entries at
	// the archive root.
	RootPrefix string

	// MaxUncompressedSize rejects trees larger than this many bytes. Zero
	// disables the check.
	MaxUncompressedSize int64
}

// Builder implements the ArchiveBuilder interface.
type Builder struct {
	prefix  string
	maxSize int64
}

// NewBuilder creates a zip archive builder.
func NewBuilder(cfg Config) *Builder {
	return &Builder{
		prefix:  path.Clean("/" + filepath.ToSlash(cfg.RootPrefix))[1:],
		maxSize: cfg.MaxUncompressedSize,
	}
}

// Build writes every entry below root into a new zip at outputPath. On
// failure the partial archive is removed.
func (b *Builder) Build(ctx context.Context, root, outputPath string) (stats *domain.ArchiveStats, err error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "archive",
	})
	log := zerowrap.FromCtx(ctx)

	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", domain.ErrArchiveFailed, outputPath, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
				log.Warn().Err(rmErr).Str("path", outputPath).Msg("failed to remove partial archive")
			}
		}
	}()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	stats = &domain.ArchiveStats{Path: outputPath}
	if b.prefix != "" {
		if _, err := zw.CreateHeader(&zip.FileHeader{Name: b.prefix + "/", Method: zip.Store}); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
		}
	}

	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == root {
			return nil
		}
		return b.addEntry(zw, root, p, d, stats)
	})
	if walkErr != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrArchiveFailed, walkErr)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalize: %v", domain.ErrArchiveFailed, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close: %v", domain.ErrArchiveFailed, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: stat: %v", domain.ErrArchiveFailed, err)
	}
	stats.CompressedSize = info.Size()

	log.Debug().
		Int("files", stats.Files).
		Int64(zerowrap.FieldSize, stats.CompressedSize).
		Msg("zip archive written")

	return stats, nil
}

func (b *Builder) addEntry(zw *zip.Writer, root, p string, d fs.DirEntry, stats *domain.ArchiveStats) error {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return err
	}
	name := filepath.ToSlash(rel)
	if b.prefix != "" {
		name = b.prefix + "/" + name
	}

	info, err := d.Info()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name

	switch {
	case d.IsDir():
		header.Name += "/"
		header.Method = zip.Store
		_, err := zw.CreateHeader(header)
		return err

	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(p)
		if err != nil {
			return err
		}
		header.Method = zip.Store
		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, target)
		return err

	case info.Mode().IsRegular():
		stats.UncompressedSize += info.Size()
		if b.maxSize > 0 && stats.UncompressedSize > b.maxSize {
			return fmt.Errorf("%w: exceeds %d bytes uncompressed", domain.ErrLayerTooLarge, b.maxSize)
		}

		header.Method = zip.Deflate
		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if err := copyFile(w, p); err != nil {
			return err
		}
		stats.Files++
		return nil

	default:
		// Sockets, devices and pipes have no place in a layer.
		return nil
	}
}

func copyFile(w io.Writer, p string) error {
	src, err := os.Open(p)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(w, src)
	return err
}
