package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/models/entities"
)

type ScanRepository struct {
	store *db.Store
}

// NewScanRepository creates the sqlx-based scan-log repository
func NewScanRepository(store *db.Store) *ScanRepository {
	return &ScanRepository{store: store}
}

// Insert appends one scan event. The table is append-only; nothing in the
// registry updates or deletes rows here.
func (r *ScanRepository) Insert(ctx context.Context, scan *entities.ScanEvent) error {
	if scan.ID == "" {
		scan.ID = uuid.New().String()
	}
	if scan.ScannedAt.IsZero() {
		scan.ScannedAt = time.Now().UTC()
	}

	sq := r.store.Sqlx()
	query := sq.Rebind(`
		INSERT INTO scans (id, id_number, ip_address, user_agent, scanned_at)
		VALUES (?, ?, ?, ?, ?)
	`)

	if _, err := sq.ExecContext(ctx, query,
		scan.ID,
		scan.IDNumber,
		scan.IPAddress,
		scan.UserAgent,
		scan.ScannedAt,
	); err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to insert scan event")
	}
	return nil
}

// ListByIDNumber returns the scan history for a card, most recent first.
func (r *ScanRepository) ListByIDNumber(ctx context.Context, idNumber string) ([]entities.ScanEvent, error) {
	scans := []entities.ScanEvent{}

	sq := r.store.Sqlx()
	query := sq.Rebind(`
		SELECT id, id_number, ip_address, user_agent, scanned_at
		FROM scans
		WHERE id_number = ?
		ORDER BY scanned_at DESC
	`)

	if err := sq.SelectContext(ctx, &scans, query, idNumber); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to list scan events")
	}
	return scans, nil
}
