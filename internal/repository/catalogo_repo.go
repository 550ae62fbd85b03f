package repository

import (
	"context"

	"tallerpro/internal/model"

	"gorm.io/gorm"
)

// ── Tipos de dispositivo ──────────────────────────────────────────────────────

type TipoRepository interface {
	Crear(ctx context.Context, t *model.TipoDispositivo) error
	Listar(ctx context.Context, incluirInactivos bool) ([]model.TipoDispositivo, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.TipoDispositivo, error)
	// ObtenerPorNombre matches case-insensitively across active AND
	// soft-deleted rows: inactive names still block re-use.
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.TipoDispositivo, error)
	Actualizar(ctx context.Context, t *model.TipoDispositivo) error
	Desactivar(ctx context.Context, id uint) error
}

type tipoRepo struct{ db *gorm.DB }

func NewTipoRepository(db *gorm.DB) TipoRepository { return &tipoRepo{db: db} }

func (r *tipoRepo) Crear(ctx context.Context, t *model.TipoDispositivo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tipoRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.TipoDispositivo, error) {
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var tipos []model.TipoDispositivo
	err := q.Find(&tipos).Error
	return tipos, err
}

func (r *tipoRepo) ObtenerPorID(ctx context.Context, id uint) (*model.TipoDispositivo, error) {
	var t model.TipoDispositivo
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.TipoDispositivo, error) {
	var t model.TipoDispositivo
	err := r.db.WithContext(ctx).Where("LOWER(nombre) = LOWER(?)", nombre).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tipoRepo) Actualizar(ctx context.Context, t *model.TipoDispositivo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *tipoRepo) Desactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.TipoDispositivo{}).
		Where("id = ?", id).Update("activo", false).Error
}

// ── Marcas ────────────────────────────────────────────────────────────────────

type MarcaRepository interface {
	Crear(ctx context.Context, m *model.Marca) error
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Marca, error)
	ObtenerPorID(ctx context.Context, id uint) (*model.Marca, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Marca, error)
	Actualizar(ctx context.Context, m *model.Marca) error
	Desactivar(ctx context.Context, id uint) error
}

type marcaRepo struct{ db *gorm.DB }

func NewMarcaRepository(db *gorm.DB) MarcaRepository { return &marcaRepo{db: db} }

func (r *marcaRepo) Crear(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *marcaRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.Marca, error) {
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	var marcas []model.Marca
	err := q.Find(&marcas).Error
	return marcas, err
}

func (r *marcaRepo) ObtenerPorID(ctx context.Context, id uint) (*model.Marca, error) {
	var m model.Marca
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *marcaRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Marca, error) {
	var m model.Marca
	err := r.db.WithContext(ctx).Where("LOWER(nombre) = LOWER(?)", nombre).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *marcaRepo) Actualizar(ctx context.Context, m *model.Marca) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *marcaRepo) Desactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Marca{}).
		Where("id = ?", id).Update("activo", false).Error
}
