package service

import (
	"context"
	"errors"
	"strings"

	"tallerpro/internal/dto"
	"tallerpro/internal/model"
	"tallerpro/internal/repository"

	"gorm.io/gorm"
)

type CatalogoService interface {
	// Tipos de dispositivo
	CrearTipo(ctx context.Context, req dto.CrearTipoRequest) (*dto.TipoResponse, error)
	ListarTipos(ctx context.Context, incluirInactivos bool) ([]dto.TipoResponse, error)
	ActualizarTipo(ctx context.Context, id uint, req dto.ActualizarTipoRequest) (*dto.TipoResponse, error)
	DesactivarTipo(ctx context.Context, id uint) error

	// Marcas
	CrearMarca(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error)
	ListarMarcas(ctx context.Context, incluirInactivos bool) ([]dto.MarcaResponse, error)
	ActualizarMarca(ctx context.Context, id uint, req dto.ActualizarMarcaRequest) (*dto.MarcaResponse, error)
	DesactivarMarca(ctx context.Context, id uint) error
}

type catalogoService struct {
	tipos  repository.TipoRepository
	marcas repository.MarcaRepository
}

func NewCatalogoService(tipos repository.TipoRepository, marcas repository.MarcaRepository) CatalogoService {
	return &catalogoService{tipos: tipos, marcas: marcas}
}

func mapTipo(t model.TipoDispositivo) dto.TipoResponse {
	return dto.TipoResponse{
		ID:                     t.ID,
		Nombre:                 t.Nombre,
		PrecioRevision:         t.PrecioRevision,
		PrecioReparacionMinima: t.PrecioReparacionMinima,
		Activo:                 t.Activo,
	}
}

func mapMarca(m model.Marca) dto.MarcaResponse {
	return dto.MarcaResponse{ID: m.ID, Nombre: m.Nombre, Activo: m.Activo}
}

// nombreTipoDisponible verifica que ningún tipo (activo o no) use ya el
// nombre; las filas desactivadas siguen bloqueando su nombre. permitirID
// exime a la propia fila durante un rename.
func (s *catalogoService) nombreTipoDisponible(ctx context.Context, nombre string, permitirID uint) error {
	existente, err := s.tipos.ObtenerPorNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existente.ID != permitirID {
		return ErrNombreDuplicado
	}
	return nil
}

func (s *catalogoService) nombreMarcaDisponible(ctx context.Context, nombre string, permitirID uint) error {
	existente, err := s.marcas.ObtenerPorNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existente.ID != permitirID {
		return ErrNombreDuplicado
	}
	return nil
}

func (s *catalogoService) CrearTipo(ctx context.Context, req dto.CrearTipoRequest) (*dto.TipoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if err := s.nombreTipoDisponible(ctx, nombre, 0); err != nil {
		return nil, err
	}

	t := model.TipoDispositivo{
		Nombre:                 nombre,
		PrecioRevision:         req.PrecioRevision,
		PrecioReparacionMinima: req.PrecioReparacionMinima,
		Activo:                 true,
	}
	if err := s.tipos.Crear(ctx, &t); err != nil {
		return nil, err
	}
	resp := mapTipo(t)
	return &resp, nil
}

func (s *catalogoService) ListarTipos(ctx context.Context, incluirInactivos bool) ([]dto.TipoResponse, error) {
	tipos, err := s.tipos.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TipoResponse, len(tipos))
	for i, t := range tipos {
		out[i] = mapTipo(t)
	}
	return out, nil
}

func (s *catalogoService) ActualizarTipo(ctx context.Context, id uint, req dto.ActualizarTipoRequest) (*dto.TipoResponse, error) {
	t, err := s.tipos.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrCatalogoNoEncontrado
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if err := s.nombreTipoDisponible(ctx, nombre, id); err != nil {
			return nil, err
		}
		t.Nombre = nombre
	}
	if req.Activo != nil {
		t.Activo = *req.Activo
	}
	if req.PrecioRevision != nil {
		t.PrecioRevision = req.PrecioRevision
	}
	if req.PrecioReparacionMinima != nil {
		t.PrecioReparacionMinima = req.PrecioReparacionMinima
	}

	if err := s.tipos.Actualizar(ctx, t); err != nil {
		return nil, err
	}
	resp := mapTipo(*t)
	return &resp, nil
}

func (s *catalogoService) DesactivarTipo(ctx context.Context, id uint) error {
	if _, err := s.tipos.ObtenerPorID(ctx, id); err != nil {
		return ErrCatalogoNoEncontrado
	}
	return s.tipos.Desactivar(ctx, id)
}

func (s *catalogoService) CrearMarca(ctx context.Context, req dto.CrearMarcaRequest) (*dto.MarcaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if err := s.nombreMarcaDisponible(ctx, nombre, 0); err != nil {
		return nil, err
	}

	m := model.Marca{Nombre: nombre, Activo: true}
	if err := s.marcas.Crear(ctx, &m); err != nil {
		return nil, err
	}
	resp := mapMarca(m)
	return &resp, nil
}

func (s *catalogoService) ListarMarcas(ctx context.Context, incluirInactivos bool) ([]dto.MarcaResponse, error) {
	marcas, err := s.marcas.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MarcaResponse, len(marcas))
	for i, m := range marcas {
		out[i] = mapMarca(m)
	}
	return out, nil
}

func (s *catalogoService) ActualizarMarca(ctx context.Context, id uint, req dto.ActualizarMarcaRequest) (*dto.MarcaResponse, error) {
	m, err := s.marcas.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, ErrCatalogoNoEncontrado
	}

	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if err := s.nombreMarcaDisponible(ctx, nombre, id); err != nil {
			return nil, err
		}
		m.Nombre = nombre
	}
	if req.Activo != nil {
		m.Activo = *req.Activo
	}

	if err := s.marcas.Actualizar(ctx, m); err != nil {
		return nil, err
	}
	resp := mapMarca(*m)
	return &resp, nil
}

func (s *catalogoService) DesactivarMarca(ctx context.Context, id uint) error {
	if _, err := s.marcas.ObtenerPorID(ctx, id); err != nil {
		return ErrCatalogoNoEncontrado
	}
	return s.marcas.Desactivar(ctx, id)
}
