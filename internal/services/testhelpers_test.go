package services

import (
	"path/filepath"
	"testing"

	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/db/repositories"
)

// setupTestStore opens a file-backed store in a temp dir so the gorm and
// sqlx handles see the same database.
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

func testRepos(t *testing.T, store *db.Store) (*repositories.MemberRepository, *repositories.ScanRepository, *repositories.AccountRepository, *repositories.AssetRepository) {
	t.Helper()
	return repositories.NewMemberRepository(store),
		repositories.NewScanRepository(store),
		repositories.NewAccountRepository(store),
		repositories.NewAssetRepository(store)
}
