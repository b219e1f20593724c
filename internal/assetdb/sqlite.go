package assetdb

import (
	"context"
	"database/sql"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// SQLiteIndex is a persistent path to GUID index.
type SQLiteIndex struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSQLiteIndex opens (and creates if needed) an index database.
// Use ":memory:" for an in-memory index.
func OpenSQLiteIndex(dbPath string) (*SQLiteIndex, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.FileSystemError("create index directory").WithCause(err).WithContext("path", dbPath).Build()
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryAssetDB, "open sqlite database").Fatal().Build()
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	idx := &SQLiteIndex{db: db}
	if err := idx.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryAssetDB, "initialize schema").Fatal().Build()
	}
	return idx, nil
}

func (s *SQLiteIndex) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assets (
		path TEXT PRIMARY KEY,
		guid TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_assets_guid ON assets(guid);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database.
func (s *SQLiteIndex) Close() error { return s.db.Close() }

// Put records the GUID of one asset path. Malformed GUIDs are rejected.
func (s *SQLiteIndex) Put(ctx context.Context, assetPath, guid string) error {
	normalized, ok := NormalizeGUID(guid)
	if !ok {
		return errors.ValidationError("invalid asset guid").
			WithContext("asset", assetPath).
			WithContext("guid", guid).
			Build()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO assets (path, guid) VALUES (?, ?) ON CONFLICT(path) DO UPDATE SET guid = excluded.guid",
		assetPath, normalized,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryAssetDB, "insert asset").Fatal().WithContext("asset", assetPath).Build()
	}
	return nil
}

// Identity implements Resolver.
func (s *SQLiteIndex) Identity(ctx context.Context, assetPath string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var guid string
	err := s.db.QueryRowContext(ctx, "SELECT guid FROM assets WHERE path = ?", assetPath).Scan(&guid)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryAssetDB, "query asset").Fatal().WithContext("asset", assetPath).Build()
	}
	return guid, nil
}

// Count returns the number of indexed assets.
func (s *SQLiteIndex) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets").Scan(&n); err != nil {
		return 0, errors.WrapError(err, errors.CategoryAssetDB, "count assets").Fatal().Build()
	}
	return n, nil
}

// ImportStats summarizes an Import call.
type ImportStats struct {
	Indexed int
	Skipped int
}

// Import walks projectRoot/subdir for .meta files and indexes every valid GUID
// under its project-relative slash path. Meta files without a valid GUID are skipped.
func (s *SQLiteIndex) Import(ctx context.Context, projectRoot, subdir string) (ImportStats, error) {
	var stats ImportStats
	start := filepath.Join(projectRoot, subdir)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, errors.WrapError(err, errors.CategoryAssetDB, "begin import").Fatal().Build()
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO assets (path, guid) VALUES (?, ?) ON CONFLICT(path) DO UPDATE SET guid = excluded.guid")
	if err != nil {
		return stats, errors.WrapError(err, errors.CategoryAssetDB, "prepare import").Fatal().Build()
	}
	defer func() { _ = stmt.Close() }()

	walkErr := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), MetaExtension) {
			return nil
		}
		// #nosec G304 - p comes from WalkDir under the project root
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		guid, ok, perr := ParseMeta(data)
		if perr != nil || !ok {
			stats.Skipped++
			return nil
		}
		rel, err := filepath.Rel(projectRoot, strings.TrimSuffix(p, MetaExtension))
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, filepath.ToSlash(rel), guid); err != nil {
			return err
		}
		stats.Indexed++
		return nil
	})
	if walkErr != nil {
		return stats, errors.WrapError(walkErr, errors.CategoryAssetDB, "import meta files").
			Fatal().
			WithContext("path", start).
			Build()
	}
	if err := tx.Commit(); err != nil {
		return stats, errors.WrapError(err, errors.CategoryAssetDB, "commit import").Fatal().Build()
	}
	return stats, nil
}
