package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/db"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

type MemberRepository struct {
	store *db.Store
}

// NewMemberRepository creates a GORM-based member repository
func NewMemberRepository(store *db.Store) *MemberRepository {
	return &MemberRepository{store: store}
}

// GetByIDNumber retrieves a member by the public card number
func (r *MemberRepository) GetByIDNumber(ctx context.Context, idNumber string) (*gormModels.Member, error) {
	var member gormModels.Member

	err := r.store.Gorm().WithContext(ctx).
		Where("id_number = ?", idNumber).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "member not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to fetch member")
	}

	return &member, nil
}

// GetByID retrieves a member by surrogate key
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*gormModels.Member, error) {
	var member gormModels.Member

	err := r.store.Gorm().WithContext(ctx).First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "member not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to fetch member")
	}

	return &member, nil
}

// List returns members ordered by local-language full name ascending. An
// optional search term substring-matches either name, the phone, or the
// id_number.
func (r *MemberRepository) List(ctx context.Context, search string) ([]gormModels.Member, error) {
	members := []gormModels.Member{}

	q := r.store.Gorm().WithContext(ctx).Order("full_name_am ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"full_name_am LIKE ? OR full_name_en LIKE ? OR phone LIKE ? OR id_number LIKE ?",
			like, like, like, like,
		)
	}

	if err := q.Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to list members")
	}

	return members, nil
}

// Update overwrites the mutable card fields. The id_number column is never
// touched here; the issuance service is its only writer.
func (r *MemberRepository) Update(ctx context.Context, member *gormModels.Member) error {
	res := r.store.Gorm().WithContext(ctx).
		Model(&gormModels.Member{}).
		Where("id = ?", member.ID).
		Omit("id", "id_number", "created_at").
		Select("*").
		Updates(member)

	if res.Error != nil {
		return apperrors.Wrap(res.Error, apperrors.KindStorage, "failed to update member")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "member not found")
	}
	return nil
}

// Delete removes a member. Issued numbers are never reused regardless.
func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	res := r.store.Gorm().WithContext(ctx).Delete(&gormModels.Member{}, id)
	if res.Error != nil {
		return apperrors.Wrap(res.Error, apperrors.KindStorage, "failed to delete member")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "member not found")
	}
	return nil
}
