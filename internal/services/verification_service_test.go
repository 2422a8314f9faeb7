package services

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/models/dtos/requests"
)

func TestVerificationService_HitLogsScan(t *testing.T) {
	store := setupTestStore(t)
	members, scans, _, _ := testRepos(t, store)

	issuance := NewIssuanceService(store, nil)
	ctx := context.Background()

	issued, err := issuance.Issue(ctx, &requests.MemberRequest{FullNameEn: "Scan Target"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	service := NewVerificationService(store, members, scans, nil)
	before := time.Now().UTC()

	member, err := service.Verify(ctx, issued.IDNumber, "198.51.100.7", "scanner/1.0")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if member.IDNumber != issued.IDNumber {
		t.Errorf("Expected %s, got %s", issued.IDNumber, member.IDNumber)
	}

	// Drain the audit worker before asserting.
	service.Close()

	events, err := scans.ListByIDNumber(ctx, issued.IDNumber)
	if err != nil {
		t.Fatalf("listScans failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected exactly 1 scan event, got %d", len(events))
	}
	if events[0].IPAddress != "198.51.100.7" || events[0].UserAgent != "scanner/1.0" {
		t.Errorf("Scan event did not capture caller identity: %+v", events[0])
	}
	if events[0].ScannedAt.Before(before) {
		t.Errorf("Scan timestamp %v precedes call time %v", events[0].ScannedAt, before)
	}
}

func TestVerificationService_RepeatedScansAllLogged(t *testing.T) {
	store := setupTestStore(t)
	members, scans, _, _ := testRepos(t, store)

	issuance := NewIssuanceService(store, nil)
	ctx := context.Background()

	issued, err := issuance.Issue(ctx, &requests.MemberRequest{FullNameEn: "Repeat Target"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	service := NewVerificationService(store, members, scans, nil)
	for i := 0; i < 5; i++ {
		if _, err := service.Verify(ctx, issued.IDNumber, "203.0.113.1", "scanner/1.0"); err != nil {
			t.Fatalf("verify %d failed: %v", i, err)
		}
	}
	service.Close()

	events, err := scans.ListByIDNumber(ctx, issued.IDNumber)
	if err != nil {
		t.Fatalf("listScans failed: %v", err)
	}
	if len(events) != 5 {
		t.Errorf("Expected 5 scan events (no dedup), got %d", len(events))
	}
}

func TestVerificationService_MissReturnsNotFoundAndLogsNothing(t *testing.T) {
	store := setupTestStore(t)
	members, scans, _, _ := testRepos(t, store)

	service := NewVerificationService(store, members, scans, nil)
	ctx := context.Background()

	_, err := service.Verify(ctx, "BGR-POL-99999", "203.0.113.1", "scanner/1.0")
	if !apperrors.HasKind(err, apperrors.KindNotFound) {
		t.Fatalf("Expected NotFound, got %v", err)
	}
	service.Close()

	events, err := scans.ListByIDNumber(ctx, "BGR-POL-99999")
	if err != nil {
		t.Fatalf("listScans failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no scan events for a miss, got %d", len(events))
	}
}

func TestVerificationService_ScansMostRecentFirst(t *testing.T) {
	store := setupTestStore(t)
	members, scans, _, _ := testRepos(t, store)

	issuance := NewIssuanceService(store, nil)
	ctx := context.Background()

	issued, err := issuance.Issue(ctx, &requests.MemberRequest{FullNameEn: "Ordered Target"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	service := NewVerificationService(store, members, scans, nil)
	agents := []string{"first", "second", "third"}
	for _, agent := range agents {
		if _, err := service.Verify(ctx, issued.IDNumber, "203.0.113.1", agent); err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	service.Close()

	events, err := service.ListScans(ctx, issued.IDNumber)
	if err != nil {
		t.Fatalf("listScans failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].UserAgent != "third" {
		t.Errorf("Expected most recent first, got %q", events[0].UserAgent)
	}
}

func TestVerificationService_RestoreDuringScans(t *testing.T) {
	store := setupTestStore(t)
	members, scans, _, _ := testRepos(t, store)

	issuance := NewIssuanceService(store, nil)
	ctx := context.Background()

	issued, err := issuance.Issue(ctx, &requests.MemberRequest{FullNameEn: "Swap Target"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	backup := NewBackupService(store)
	var snapshot bytes.Buffer
	if err := backup.Snapshot(&snapshot); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	service := NewVerificationService(store, members, scans, nil)

	// Hammer the lookup while the restore swaps the database file. Each call
	// holds the read lock the way the request guard does.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			store.RLock()
			_, err := service.Verify(ctx, issued.IDNumber, "203.0.113.9", "during")
			store.RUnlock()
			if err != nil {
				t.Errorf("verify during restore failed: %v", err)
				return
			}
		}
	}()

	time.Sleep(10 * time.Millisecond)
	if err := backup.Restore(ctx, bytes.NewReader(snapshot.Bytes())); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	close(stop)
	wg.Wait()

	// Events enqueued after the restore must land in the swapped database.
	const after = 3
	for i := 0; i < after; i++ {
		store.RLock()
		_, err := service.Verify(ctx, issued.IDNumber, "203.0.113.9", "after")
		store.RUnlock()
		if err != nil {
			t.Fatalf("verify after restore failed: %v", err)
		}
	}
	service.Close()

	events, err := scans.ListByIDNumber(ctx, issued.IDNumber)
	if err != nil {
		t.Fatalf("listScans failed: %v", err)
	}
	var got int
	for _, e := range events {
		if e.UserAgent == "after" {
			got++
		}
	}
	if got != after {
		t.Errorf("Expected %d post-restore scan events, got %d", after, got)
	}
}
