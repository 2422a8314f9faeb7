package gorm

import (
	"time"

	"benishangul-police/idregistry/internal/constants"
)

// Account is an authentication principal for the back office. Username is
// folded to upper case before insert so uniqueness is case-insensitive.
type Account struct {
	ID           uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string         `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash string         `gorm:"column:password" json:"-"`
	Role         constants.Role `gorm:"column:role" json:"role"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "users"
}
