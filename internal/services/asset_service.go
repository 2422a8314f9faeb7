package services

import (
	"context"
	"time"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/common"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/db/repositories"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

const assetCacheTTL = 5 * time.Minute

// AssetService serves the branding blobs with a read cache in front of the
// store. Upserts invalidate the cache so the renderer never sees a stale
// emblem for longer than one request.
type AssetService struct {
	assets *repositories.AssetRepository
	cache  common.CacheInterface
}

func NewAssetService(assets *repositories.AssetRepository, cache common.CacheInterface) *AssetService {
	return &AssetService{assets: assets, cache: cache}
}

func (s *AssetService) cacheKey() string {
	return string(constants.CachePrefixAssets) + "all"
}

// List returns all assets as a key → value map.
func (s *AssetService) List(ctx context.Context) (map[string]string, error) {
	val, err := s.cache.GetOrSet(s.cacheKey(), assetCacheTTL, func() (any, error) {
		return s.assets.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	switch m := val.(type) {
	case map[string]string:
		return m, nil
	case map[string]interface{}:
		// Redis round-trips through JSON and loses the concrete type.
		out := make(map[string]string, len(m))
		for k, v := range m {
			if str, ok := v.(string); ok {
				out[k] = str
			}
		}
		return out, nil
	}
	return nil, apperrors.New(apperrors.KindStorage, "unexpected cached asset shape")
}

// Upsert writes one asset and drops the cached map.
func (s *AssetService) Upsert(ctx context.Context, key, value string) error {
	if key == "" || value == "" {
		return apperrors.New(apperrors.KindValidation, "missing key or value")
	}

	if err := s.assets.Upsert(ctx, &gormModels.Asset{Key: key, Value: value}); err != nil {
		return err
	}

	s.cache.Delete(s.cacheKey())
	return nil
}
