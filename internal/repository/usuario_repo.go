package repository

import (
	"context"

	"tallerpro/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Crear(ctx context.Context, u *model.Usuario) error
	ObtenerPorEmail(ctx context.Context, email string) (*model.Usuario, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Usuario, error)
	Listar(ctx context.Context) ([]model.Usuario, error)
	Actualizar(ctx context.Context, u *model.Usuario) error
	ActualizarPasswordTx(tx *gorm.DB, id uint, hash string) error
	Eliminar(ctx context.Context, id uint) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Crear(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) ObtenerPorEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) Listar(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Actualizar(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) ActualizarPasswordTx(tx *gorm.DB, id uint, hash string) error {
	return tx.Model(&model.Usuario{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// Eliminar is a hard delete — user removal is irreversible.
func (r *usuarioRepo) Eliminar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Usuario{}, id).Error
}
