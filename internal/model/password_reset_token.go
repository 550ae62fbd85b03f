package model

import (
	"time"
)

// PasswordResetToken records each password recovery issued for a user.
// Rows are append-only: they back the per-user rate limit and serve as an
// audit trail. Expiry is 30 minutes from creation.
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UsuarioID uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}
