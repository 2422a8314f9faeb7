package db

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/logging"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

const scansSchema = `
CREATE TABLE IF NOT EXISTS scans (
	id TEXT PRIMARY KEY,
	id_number TEXT NOT NULL,
	ip_address TEXT,
	user_agent TEXT,
	scanned_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scans_id_number ON scans (id_number);
`

// Migrate creates all registry tables and seeds the issuance counter and the
// default administrator. Safe to run on every startup.
func (s *Store) Migrate() error {
	orm := s.Gorm()

	if err := orm.AutoMigrate(
		&gormModels.Member{},
		&gormModels.Account{},
		&gormModels.Asset{},
		&gormModels.IDCounter{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	// Scans live on the sqlx side of the stack.
	for _, stmt := range strings.Split(scansSchema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.Sqlx().Exec(stmt); err != nil {
			return fmt.Errorf("scans schema failed: %w", err)
		}
	}

	if err := s.seedCounter(); err != nil {
		return err
	}
	return s.seedDefaultAdmin()
}

// seedCounter creates the single counter row. Databases that predate the
// counter start it at the highest surrogate key already issued, so numbering
// continues where the old max(id)+1 scheme left off.
func (s *Store) seedCounter() error {
	orm := s.Gorm()

	var count int64
	if err := orm.Model(&gormModels.IDCounter{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counter lookup failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	var maxID int64
	if err := orm.Model(&gormModels.Member{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error; err != nil {
		return fmt.Errorf("max id lookup failed: %w", err)
	}

	if err := orm.Create(&gormModels.IDCounter{ID: 1, Value: maxID}).Error; err != nil {
		return fmt.Errorf("counter seed failed: %w", err)
	}

	logging.Info("issuance counter seeded", "value", maxID)
	return nil
}

func (s *Store) seedDefaultAdmin() error {
	orm := s.Gorm()

	var count int64
	if err := orm.Model(&gormModels.Account{}).Count(&count).Error; err != nil {
		return fmt.Errorf("account count failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("POLICE1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	admin := gormModels.Account{
		Username:     "POLICE",
		PasswordHash: string(hash),
		Role:         constants.RoleAdministrator,
	}
	if err := orm.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	logging.Info("default admin created", "username", admin.Username)
	return nil
}
