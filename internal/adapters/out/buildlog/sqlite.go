// Package buildlog implements the BuildRecorder interface on SQLite.
package buildlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/zerowrap"
	_ "modernc.org/sqlite"

	"github.com/bnema/layerkit/internal/domain"
)

// DefaultListLimit caps List when the filter sets no limit.
const DefaultListLimit = 50

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id                TEXT PRIMARY KEY,
	layer_name        TEXT NOT NULL,
	packages          TEXT NOT NULL,
	status            TEXT NOT NULL,
	failure_kind      TEXT NOT NULL DEFAULT '',
	failed_stage      TEXT NOT NULL DEFAULT '',
	error             TEXT NOT NULL DEFAULT '',
	bucket            TEXT NOT NULL DEFAULT '',
	object_key        TEXT NOT NULL DEFAULT '',
	archive_size      INTEGER NOT NULL DEFAULT 0,
	layer_version_arn TEXT NOT NULL DEFAULT '',
	version           INTEGER NOT NULL DEFAULT 0,
	orphaned          INTEGER NOT NULL DEFAULT 0,
	started_at        TEXT NOT NULL,
	finished_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_builds_layer_name ON builds(layer_name);
CREATE INDEX IF NOT EXISTS idx_builds_orphaned ON builds(orphaned) WHERE orphaned = 1;
`

const columns = `id, layer_name, packages, status, failure_kind, failed_stage, error,
	bucket, object_key, archive_size, layer_version_arn, version, orphaned,
	started_at, finished_at`

// Recorder implements the BuildRecorder interface.
type Recorder struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at path and applies the schema.
func Open(ctx context.Context, path string) (*Recorder, error) {
	log := zerowrap.FromCtx(ctx)

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, log.WrapErr(err, "failed to create history directory")
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, log.WrapErr(err, "failed to open history database")
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, log.WrapErr(err, "failed to apply history schema")
	}

	log.Debug().Str("path", path).Msg("build history opened")
	return &Recorder{db: db}, nil
}

// Record stores one build outcome, replacing any row with the same id.
func (r *Recorder) Record(ctx context.Context, rec domain.BuildRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO builds (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LayerName,
		strings.Join(rec.Packages, " "),
		rec.Status,
		string(rec.FailureKind),
		string(rec.FailedStage),
		rec.Error,
		rec.Bucket,
		rec.Key,
		rec.ArchiveSize,
		rec.LayerVersionArn,
		rec.Version,
		boolToInt(rec.Orphaned),
		formatTime(rec.StartedAt),
		formatTime(rec.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to record build %s: %w", rec.ID, err)
	}
	return nil
}

// List returns recorded builds, newest first.
func (r *Recorder) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.BuildRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM builds
		WHERE (? = '' OR layer_name = ?)
		  AND (? = 0 OR orphaned = 1)
		ORDER BY started_at DESC
		LIMIT ?`,
		filter.LayerName, filter.LayerName,
		boolToInt(filter.OrphanedOnly),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var records []domain.BuildRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read builds: %w", err)
	}

	return records, nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

func scanRecord(rows *sql.Rows) (domain.BuildRecord, error) {
	var (
		rec                 domain.BuildRecord
		packages            string
		kind, stage         string
		orphaned            int
		startedAt, finished string
	)

	err := rows.Scan(
		&rec.ID,
		&rec.LayerName,
		&packages,
		&rec.Status,
		&kind,
		&stage,
		&rec.Error,
		&rec.Bucket,
		&rec.Key,
		&rec.ArchiveSize,
		&rec.LayerVersionArn,
		&rec.Version,
		&orphaned,
		&startedAt,
		&finished,
	)
	if err != nil {
		return rec, fmt.Errorf("failed to scan build: %w", err)
	}

	rec.Packages = strings.Fields(packages)
	rec.FailureKind = domain.FailureKind(kind)
	rec.FailedStage = domain.Stage(stage)
	rec.Orphaned = orphaned == 1
	rec.StartedAt = parseTime(startedAt)
	rec.FinishedAt = parseTime(finished)

	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
