package service

import (
	"context"
	"testing"

	"tallerpro/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newCatalogoSvc() (CatalogoService, *stubTipoRepo, *stubMarcaRepo) {
	tipos := newStubTipoRepo()
	marcas := newStubMarcaRepo()
	return NewCatalogoService(tipos, marcas), tipos, marcas
}

func TestCatalogoCrearTipo(t *testing.T) {
	svc, _, _ := newCatalogoSvc()
	precio := decimal.NewFromInt(10000)

	resp, err := svc.CrearTipo(context.Background(), dto.CrearTipoRequest{
		Nombre: "Laptop", PrecioRevision: &precio,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Laptop", resp.Nombre)
	assert.True(t, resp.Activo)
	assert.True(t, resp.PrecioRevision.Equal(precio))
}

func TestCatalogoCrearTipo_NombreDuplicado(t *testing.T) {
	svc, _, _ := newCatalogoSvc()
	ctx := context.Background()

	_, err := svc.CrearTipo(ctx, dto.CrearTipoRequest{Nombre: "Laptop"})
	assert.NoError(t, err)

	// Mayúsculas distintas siguen chocando
	_, err = svc.CrearTipo(ctx, dto.CrearTipoRequest{Nombre: "LAPTOP"})
	assert.ErrorIs(t, err, ErrNombreDuplicado)
}

func TestCatalogoSoftDelete_SigueBloqueandoNombre(t *testing.T) {
	svc, _, _ := newCatalogoSvc()
	ctx := context.Background()

	creado, err := svc.CrearTipo(ctx, dto.CrearTipoRequest{Nombre: "Tablet"})
	assert.NoError(t, err)
	assert.NoError(t, svc.DesactivarTipo(ctx, creado.ID))

	// Fuera del listado activo
	activos, err := svc.ListarTipos(ctx, false)
	assert.NoError(t, err)
	assert.Empty(t, activos)

	// Pero visible con includeInactive
	todos, err := svc.ListarTipos(ctx, true)
	assert.NoError(t, err)
	assert.Len(t, todos, 1)
	assert.False(t, todos[0].Activo)

	// Y su nombre sigue reservado
	_, err = svc.CrearTipo(ctx, dto.CrearTipoRequest{Nombre: "tablet"})
	assert.ErrorIs(t, err, ErrNombreDuplicado)
}

func TestCatalogoActualizarTipo_RenombrarASuPropioNombre(t *testing.T) {
	svc, _, _ := newCatalogoSvc()
	ctx := context.Background()

	creado, _ := svc.CrearTipo(ctx, dto.CrearTipoRequest{Nombre: "Consola"})

	// Renombrarse a sí mismo no es un duplicado
	nombre := "Consola"
	resp, err := svc.ActualizarTipo(ctx, creado.ID, dto.ActualizarTipoRequest{Nombre: &nombre})
	assert.NoError(t, err)
	assert.Equal(t, "Consola", resp.Nombre)
}

func TestCatalogoActualizarTipo_NoEncontrado(t *testing.T) {
	svc, _, _ := newCatalogoSvc()

	nombre := "X"
	_, err := svc.ActualizarTipo(context.Background(), 42, dto.ActualizarTipoRequest{Nombre: &nombre})
	assert.ErrorIs(t, err, ErrCatalogoNoEncontrado)
}

func TestCatalogoMarcas_MismoComportamiento(t *testing.T) {
	svc, _, _ := newCatalogoSvc()
	ctx := context.Background()

	creada, err := svc.CrearMarca(ctx, dto.CrearMarcaRequest{Nombre: "Samsung"})
	assert.NoError(t, err)

	_, err = svc.CrearMarca(ctx, dto.CrearMarcaRequest{Nombre: "samsung"})
	assert.ErrorIs(t, err, ErrNombreDuplicado)

	assert.NoError(t, svc.DesactivarMarca(ctx, creada.ID))
	activas, _ := svc.ListarMarcas(ctx, false)
	assert.Empty(t, activas)

	_, err = svc.CrearMarca(ctx, dto.CrearMarcaRequest{Nombre: "Samsung"})
	assert.ErrorIs(t, err, ErrNombreDuplicado)
}

func TestCatalogoReactivarTipo(t *testing.T) {
	svc, _, _ := newCatalogoSvc()
	ctx := context.Background()

	creado, _ := svc.CrearTipo(ctx, dto.CrearTipoRequest{Nombre: "Impresora"})
	assert.NoError(t, svc.DesactivarTipo(ctx, creado.ID))

	activo := true
	resp, err := svc.ActualizarTipo(ctx, creado.ID, dto.ActualizarTipoRequest{Activo: &activo})
	assert.NoError(t, err)
	assert.True(t, resp.Activo)

	activos, _ := svc.ListarTipos(ctx, false)
	assert.Len(t, activos, 1)
}
