package repository

import (
	"context"

	"tallerpro/internal/model"

	"gorm.io/gorm"
)

type ConfiguracionRepository interface {
	ObtenerNegocio(ctx context.Context) (*model.ConfigNegocio, error)
	CrearNegocio(ctx context.Context, c *model.ConfigNegocio) error
	ActualizarNegocio(ctx context.Context, c *model.ConfigNegocio) error

	ObtenerEmailActiva(ctx context.Context) (*model.ConfigEmail, error)
	// GuardarEmail deactivates every active row and inserts the new one in
	// a single transaction; the partial unique index on (activo) keeps the
	// "at most one active" invariant even against concurrent writers.
	GuardarEmail(ctx context.Context, c *model.ConfigEmail) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) ObtenerNegocio(ctx context.Context) (*model.ConfigNegocio, error) {
	var c model.ConfigNegocio
	if err := r.db.WithContext(ctx).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) CrearNegocio(ctx context.Context, c *model.ConfigNegocio) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *configuracionRepo) ActualizarNegocio(ctx context.Context, c *model.ConfigNegocio) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *configuracionRepo) ObtenerEmailActiva(ctx context.Context) (*model.ConfigEmail, error) {
	var c model.ConfigEmail
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Order("created_at desc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *configuracionRepo) GuardarEmail(ctx context.Context, c *model.ConfigEmail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ConfigEmail{}).
			Where("activo = true").
			Update("activo", false).Error; err != nil {
			return err
		}
		c.Activo = true
		return tx.Create(c).Error
	})
}
