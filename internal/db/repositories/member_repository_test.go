package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/db"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

func setupTestStore(t *testing.T) *db.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite")
	store, err := db.OpenSQLite(path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store
}

func insertMember(t *testing.T, store *db.Store, seq int, nameAm, nameEn, phone string) *gormModels.Member {
	t.Helper()

	member := &gormModels.Member{
		IDNumber:   fmt.Sprintf("BGR-POL-%05d", seq),
		FullNameAm: nameAm,
		FullNameEn: nameEn,
		Phone:      phone,
	}
	if err := store.Gorm().Create(member).Error; err != nil {
		t.Fatalf("Failed to insert member: %v", err)
	}
	return member
}

func TestMemberRepository_SearchMatchesAnyField(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMemberRepository(store)
	ctx := context.Background()

	insertMember(t, store, 1, "ሙሉ ስም1", "Full Name One", "0911000000")
	insertMember(t, store, 2, "ሌላ ስም", "Another Name", "0922000000")

	byPhone, err := repo.List(ctx, "0911")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byPhone) != 1 || byPhone[0].Phone != "0911000000" {
		t.Errorf("Expected the 0911 record, got %+v", byPhone)
	}

	byEnglish, err := repo.List(ctx, "Another")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byEnglish) != 1 || byEnglish[0].FullNameEn != "Another Name" {
		t.Errorf("Expected the Another Name record, got %+v", byEnglish)
	}

	byNumber, err := repo.List(ctx, "POL-00002")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byNumber) != 1 || byNumber[0].IDNumber != "BGR-POL-00002" {
		t.Errorf("Expected id number match, got %+v", byNumber)
	}

	none, err := repo.List(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected empty result, got %d records", len(none))
	}
}

func TestMemberRepository_ListOrderedByLocalName(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMemberRepository(store)
	ctx := context.Background()

	// Insert out of order; code-point ascending puts ለ (U+1208) before አ (U+12A0).
	insertMember(t, store, 1, "አበበ", "Abebe", "")
	insertMember(t, store, 2, "ለምለም", "Lemlem", "")

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(all))
	}
	if all[0].FullNameAm != "ለምለም" || all[1].FullNameAm != "አበበ" {
		t.Errorf("Unexpected order: %q, %q", all[0].FullNameAm, all[1].FullNameAm)
	}
}

func TestMemberRepository_UpdateCannotChangeIDNumber(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMemberRepository(store)
	ctx := context.Background()

	member := insertMember(t, store, 1, "ሙሉ ስም", "Full Name", "0911000000")
	original := member.IDNumber

	member.IDNumber = "BGR-POL-77777"
	member.Phone = "0933000000"
	if err := repo.Update(ctx, member); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, member.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.IDNumber != original {
		t.Errorf("id_number changed from %s to %s", original, stored.IDNumber)
	}
	if stored.Phone != "0933000000" {
		t.Errorf("Expected phone update to persist, got %s", stored.Phone)
	}
}

func TestMemberRepository_GetByIDNumber_NotFound(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMemberRepository(store)

	_, err := repo.GetByIDNumber(context.Background(), "BGR-POL-00404")
	if !apperrors.HasKind(err, apperrors.KindNotFound) {
		t.Fatalf("Expected NotFound, got %v", err)
	}
}

func TestMemberRepository_DuplicateIDNumberRejected(t *testing.T) {
	store := setupTestStore(t)

	insertMember(t, store, 7, "ሀ", "A", "")
	err := store.Gorm().Create(&gormModels.Member{IDNumber: "BGR-POL-00007"}).Error
	if err == nil {
		t.Fatal("Expected unique constraint violation")
	}
}
