package repository

import (
	"context"
	"time"

	"tallerpro/internal/model"

	"gorm.io/gorm"
)

type TokenRepository interface {
	// CrearTx inserts inside an ongoing transaction: the token row and the
	// password update must commit (or roll back) together.
	CrearTx(tx *gorm.DB, t *model.PasswordResetToken) error
	ContarRecientes(ctx context.Context, usuarioID uint, desde time.Time) (int64, error)
}

type tokenRepo struct{ db *gorm.DB }

func NewTokenRepository(db *gorm.DB) TokenRepository { return &tokenRepo{db: db} }

func (r *tokenRepo) CrearTx(tx *gorm.DB, t *model.PasswordResetToken) error {
	return tx.Create(t).Error
}

func (r *tokenRepo) ContarRecientes(ctx context.Context, usuarioID uint, desde time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PasswordResetToken{}).
		Where("usuario_id = ? AND created_at >= ?", usuarioID, desde).
		Count(&n).Error
	return n, err
}
