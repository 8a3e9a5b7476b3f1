package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/accrue-app/accrue/internal/common"
)

// Backup writes a consistent snapshot of the database to destPath using
// VACUUM INTO. The snapshot lands under a temporary name and is renamed
// into place only once complete, so a partial copy is never observable.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(destPath, "destPath"); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return common.Storagef(err, "failed to create backup directory")
	}

	// Fold the WAL into the main file so the snapshot carries every
	// committed write.
	if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return common.Storagef(err, "failed to checkpoint WAL")
	}

	tmpPath := destPath + ".tmp"
	_ = os.Remove(tmpPath)

	// VACUUM INTO takes a filename literal, so the path is validated instead
	// of bound.
	if strings.ContainsAny(tmpPath, `'";`) {
		return common.Validationf("backup path contains forbidden characters")
	}
	// #nosec G201 - tmpPath is validated above
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", tmpPath)); err != nil {
		_ = os.Remove(tmpPath)
		return common.Storagef(err, "failed to write backup")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return common.Storagef(err, "failed to finalize backup")
	}

	slog.Info("Database backup complete", "path", destPath)
	return nil
}

// Restore replaces the live database with the snapshot at srcPath. The
// current file is kept alongside as a rollback copy until the swap
// succeeds; on any failure the original is put back.
func (s *SQLiteStorage) Restore(ctx context.Context, srcPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(srcPath, "srcPath"); err != nil {
		return err
	}

	if _, err := os.Stat(srcPath); err != nil {
		return common.Validationf("backup file not readable: %v", err)
	}
	if err := verifySnapshot(srcPath); err != nil {
		return err
	}

	// The connection must be closed before the file is swapped out.
	if err := s.db.Close(); err != nil {
		return common.Storagef(err, "failed to close database for restore")
	}

	rollbackPath := s.dbPath + ".restore-backup"
	_ = os.Remove(rollbackPath)

	if _, err := os.Stat(s.dbPath); err == nil {
		if err := os.Rename(s.dbPath, rollbackPath); err != nil {
			return common.Storagef(err, "failed to set aside current database")
		}
	}

	if err := copyFile(srcPath, s.dbPath); err != nil {
		// Put the original back before reopening.
		_ = os.Rename(rollbackPath, s.dbPath)
		if db, openErr := openDB(s.dbPath); openErr == nil {
			s.db = db
		}
		return common.Storagef(err, "failed to install backup")
	}

	// Stale WAL and shared-memory files belong to the replaced database.
	_ = os.Remove(s.dbPath + "-wal")
	_ = os.Remove(s.dbPath + "-shm")

	db, err := openDB(s.dbPath)
	if err != nil {
		_ = os.Remove(s.dbPath)
		_ = os.Rename(rollbackPath, s.dbPath)
		if db, openErr := openDB(s.dbPath); openErr == nil {
			s.db = db
		}
		return common.Storagef(err, "failed to reopen restored database")
	}
	s.db = db

	_ = os.Remove(rollbackPath)
	slog.Info("Database restored", "source", srcPath)
	return nil
}

// verifySnapshot runs an integrity check against the candidate file. The
// open is read-only and immutable so verification cannot rewrite the
// snapshot, not even its header.
func verifySnapshot(path string) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro&immutable=1", path))
	if err != nil {
		return common.Validationf("backup file is not a usable database: %v", err)
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return common.Validationf("backup file failed integrity check: %v", err)
	}
	if result != "ok" {
		return common.Validationf("backup file failed integrity check: %s", result)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return common.Validationf("backup file has no schema version: %v", err)
	}
	if version > ExpectedSchemaVersion {
		return common.Validationf("backup schema version %d is newer than supported %d", version, ExpectedSchemaVersion)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
