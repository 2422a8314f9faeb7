package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/db"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

type AccountRepository struct {
	store *db.Store
}

// NewAccountRepository creates a GORM-based account repository
func NewAccountRepository(store *db.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Insert creates an account. Usernames are folded to upper case so the
// unique index is effectively case-insensitive.
func (r *AccountRepository) Insert(ctx context.Context, account *gormModels.Account) error {
	account.Username = strings.ToUpper(account.Username)

	err := r.store.Gorm().WithContext(ctx).Create(account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.KindConflict, "username already taken")
		}
		return apperrors.Wrap(err, apperrors.KindStorage, "failed to insert account")
	}
	return nil
}

// FindByUsername looks an account up case-insensitively.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*gormModels.Account, error) {
	var account gormModels.Account

	err := r.store.Gorm().WithContext(ctx).
		Where("username = ?", strings.ToUpper(username)).
		First(&account).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "account not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to fetch account")
	}

	return &account, nil
}

// GetByID retrieves an account by surrogate key.
func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*gormModels.Account, error) {
	var account gormModels.Account

	err := r.store.Gorm().WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "account not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to fetch account")
	}

	return &account, nil
}

// List returns all accounts ordered by username.
func (r *AccountRepository) List(ctx context.Context) ([]gormModels.Account, error) {
	accounts := []gormModels.Account{}

	err := r.store.Gorm().WithContext(ctx).
		Order("username ASC").
		Find(&accounts).Error

	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to list accounts")
	}
	return accounts, nil
}

// UpdateRole changes the role of one account.
func (r *AccountRepository) UpdateRole(ctx context.Context, id uint, role constants.Role) error {
	res := r.store.Gorm().WithContext(ctx).
		Model(&gormModels.Account{}).
		Where("id = ?", id).
		Update("role", role)

	if res.Error != nil {
		return apperrors.Wrap(res.Error, apperrors.KindStorage, "failed to update account role")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "account not found")
	}
	return nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, id uint) error {
	res := r.store.Gorm().WithContext(ctx).Delete(&gormModels.Account{}, id)
	if res.Error != nil {
		return apperrors.Wrap(res.Error, apperrors.KindStorage, "failed to delete account")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindNotFound, "account not found")
	}
	return nil
}

// CountByRole counts accounts holding the given role.
func (r *AccountRepository) CountByRole(ctx context.Context, role constants.Role) (int64, error) {
	var count int64

	err := r.store.Gorm().WithContext(ctx).
		Model(&gormModels.Account{}).
		Where("role = ?", role).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.KindStorage, "failed to count accounts")
	}
	return count, nil
}
