package services

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/logging"
)

// BackupService snapshots and restores the registry's sqlite file. Restore
// swaps the file under the store's write lock, so no request observes a
// half-replaced database.
type BackupService struct {
	store *db.Store
}

func NewBackupService(store *db.Store) *BackupService {
	return &BackupService{store: store}
}

// Snapshot streams a consistent copy of the database file.
func (s *BackupService) Snapshot(w io.Writer) error {
	if s.store.Driver() != db.DriverSQLite {
		return apperrors.New(apperrors.KindValidation, "backup is only available for the sqlite driver")
	}
	if err := s.store.SnapshotTo(w); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to snapshot database")
	}
	return nil
}

// Restore replaces the registry with the uploaded database file.
func (s *BackupService) Restore(_ context.Context, r io.Reader) error {
	if s.store.Driver() != db.DriverSQLite {
		return apperrors.New(apperrors.KindValidation, "restore is only available for the sqlite driver")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.store.Path()), "restore-*.sqlite")
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to stage restore file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to write restore file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to write restore file")
	}

	if err := s.store.Swap(tmpPath); err != nil {
		os.Remove(tmpPath)
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to swap database file")
	}

	// Re-run migrations in case the uploaded snapshot predates the current schema.
	if err := s.store.Migrate(); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to migrate restored database")
	}

	logging.Info("database restored from upload")
	return nil
}
