package services

import (
	"context"
	"sync"
	"time"

	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/db/repositories"
	"benishangul-police/idregistry/internal/logging"
	"benishangul-police/idregistry/internal/metrics"
	"benishangul-police/idregistry/internal/models/entities"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

// VerificationService answers the public card lookup and records scan events.
// The scan write is best-effort: it runs on a separate worker so an audit
// failure can never turn a found card into an error response.
type VerificationService struct {
	store   *db.Store
	members *repositories.MemberRepository
	scans   *repositories.ScanRepository
	reg     *metrics.MetricsRegistry

	queue chan entities.ScanEvent
	wg    sync.WaitGroup
	once  sync.Once
}

// NewVerificationService creates the service and starts its audit worker.
func NewVerificationService(
	store *db.Store,
	members *repositories.MemberRepository,
	scans *repositories.ScanRepository,
	reg *metrics.MetricsRegistry,
) *VerificationService {
	s := &VerificationService{
		store:   store,
		members: members,
		scans:   scans,
		reg:     reg,
		queue:   make(chan entities.ScanEvent, 256),
	}

	s.wg.Add(1)
	go s.auditWorker()

	return s
}

// Verify resolves an ID number. On a hit it enqueues a scan event; on a miss
// there is nothing to attribute the scan to, so nothing is logged.
func (s *VerificationService) Verify(ctx context.Context, idNumber, ipAddress, userAgent string) (*gormModels.Member, error) {
	member, err := s.members.GetByIDNumber(ctx, idNumber)
	if err != nil {
		return nil, err
	}

	event := entities.ScanEvent{
		IDNumber:  member.IDNumber,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ScannedAt: time.Now().UTC(),
	}

	select {
	case s.queue <- event:
	default:
		// Queue full. Dropping the audit row is preferable to blocking the
		// scanning client.
		logging.Warn("scan audit queue full, dropping event", "id_number", member.IDNumber)
	}

	return member, nil
}

// ListScans returns the audit trail for an ID number, most recent first.
func (s *VerificationService) ListScans(ctx context.Context, idNumber string) ([]entities.ScanEvent, error) {
	return s.scans.ListByIDNumber(ctx, idNumber)
}

func (s *VerificationService) auditWorker() {
	defer s.wg.Done()

	for event := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		// The worker runs outside the request guard, so it takes the store's
		// read lock itself; a restore must never swap the handles mid-insert.
		s.store.RLock()
		err := s.scans.Insert(ctx, &event)
		s.store.RUnlock()
		if err != nil {
			logging.Error("failed to record scan event",
				"id_number", event.IDNumber,
				"error", err.Error(),
			)
		} else if s.reg != nil {
			s.reg.ScansRecordedTotal.Inc()
		}
		cancel()
	}
}

// Close drains the audit queue and stops the worker.
func (s *VerificationService) Close() {
	s.once.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}
