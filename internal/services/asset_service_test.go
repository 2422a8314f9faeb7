package services

import (
	"context"
	"testing"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/common"
)

func TestAssetService_UpsertReplacesValue(t *testing.T) {
	store := setupTestStore(t)
	_, _, _, assets := testRepos(t, store)
	service := NewAssetService(assets, common.NewCacheService(300, 600))
	ctx := context.Background()

	if err := service.Upsert(ctx, "emblem", "data:image/png;base64,AAA"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := service.Upsert(ctx, "emblem", "data:image/png;base64,BBB"); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	all, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if all["emblem"] != "data:image/png;base64,BBB" {
		t.Errorf("Expected replaced value, got %q", all["emblem"])
	}
	if len(all) != 1 {
		t.Errorf("Expected a single key, got %d", len(all))
	}
}

func TestAssetService_UpsertValidation(t *testing.T) {
	store := setupTestStore(t)
	_, _, _, assets := testRepos(t, store)
	service := NewAssetService(assets, common.NewCacheService(300, 600))

	err := service.Upsert(context.Background(), "", "value")
	if !apperrors.HasKind(err, apperrors.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestAssetService_CacheInvalidatedOnUpsert(t *testing.T) {
	store := setupTestStore(t)
	_, _, _, assets := testRepos(t, store)
	service := NewAssetService(assets, common.NewCacheService(300, 600))
	ctx := context.Background()

	if err := service.Upsert(ctx, "flag_national", "v1"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := service.List(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// Write through the service again; the cached map must not survive.
	if err := service.Upsert(ctx, "flag_national", "v2"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	all, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if all["flag_national"] != "v2" {
		t.Errorf("Expected v2 after invalidation, got %q", all["flag_national"])
	}
}
