package repositories

import (
	"context"

	"gorm.io/gorm/clause"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/db"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

type AssetRepository struct {
	store *db.Store
}

// NewAssetRepository creates a GORM-based asset repository
func NewAssetRepository(store *db.Store) *AssetRepository {
	return &AssetRepository{store: store}
}

// Upsert writes the asset, replacing any existing value for the key.
func (r *AssetRepository) Upsert(ctx context.Context, asset *gormModels.Asset) error {
	err := r.store.Gorm().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(asset).Error

	if err != nil {
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to upsert asset")
	}
	return nil
}

// List returns all assets as a key → value map, the shape the card renderer
// consumes.
func (r *AssetRepository) List(ctx context.Context) (map[string]string, error) {
	assets := []gormModels.Asset{}

	if err := r.store.Gorm().WithContext(ctx).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to list assets")
	}

	out := make(map[string]string, len(assets))
	for _, a := range assets {
		out[a.Key] = a.Value
	}
	return out, nil
}
