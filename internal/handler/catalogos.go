package handler

import (
	"errors"
	"net/http"

	"tallerpro/internal/apierror"
	"tallerpro/internal/dto"
	"tallerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogosHandler struct{ svc service.CatalogoService }

func NewCatalogosHandler(svc service.CatalogoService) *CatalogosHandler {
	return &CatalogosHandler{svc: svc}
}

func catalogoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogoNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNombreDuplicado):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error en catálogo"))
	}
}

// ── Tipos de dispositivo ──────────────────────────────────────────────────────

// CrearTipo POST /catalogs/tipos (ADMIN)
func (h *CatalogosHandler) CrearTipo(c *gin.Context) {
	var req dto.CrearTipoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTipo(c.Request.Context(), req)
	if err != nil {
		catalogoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TipoDetalleResponse{Tipo: *resp})
}

// ListarTipos GET /catalogs/tipos?includeInactive=true
func (h *CatalogosHandler) ListarTipos(c *gin.Context) {
	incluirInactivos := c.Query("includeInactive") == "true"
	tipos, err := h.svc.ListarTipos(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tipos"))
		return
	}
	c.JSON(http.StatusOK, dto.TiposResponse{Tipos: tipos})
}

// ActualizarTipo PATCH /catalogs/tipos/:id (ADMIN)
func (h *CatalogosHandler) ActualizarTipo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarTipoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarTipo(c.Request.Context(), id, req)
	if err != nil {
		catalogoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TipoDetalleResponse{Tipo: *resp})
}

// DesactivarTipo DELETE /catalogs/tipos/:id (ADMIN) — borrado lógico: la
// fila queda inactiva y su nombre sigue reservado.
func (h *CatalogosHandler) DesactivarTipo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarTipo(c.Request.Context(), id); err != nil {
		catalogoError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ── Marcas ────────────────────────────────────────────────────────────────────

// CrearMarca POST /catalogs/marcas (ADMIN)
func (h *CatalogosHandler) CrearMarca(c *gin.Context) {
	var req dto.CrearMarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMarca(c.Request.Context(), req)
	if err != nil {
		catalogoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MarcaDetalleResponse{Marca: *resp})
}

// ListarMarcas GET /catalogs/marcas?includeInactive=true
func (h *CatalogosHandler) ListarMarcas(c *gin.Context) {
	incluirInactivos := c.Query("includeInactive") == "true"
	marcas, err := h.svc.ListarMarcas(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar marcas"))
		return
	}
	c.JSON(http.StatusOK, dto.MarcasResponse{Marcas: marcas})
}

// ActualizarMarca PATCH /catalogs/marcas/:id (ADMIN)
func (h *CatalogosHandler) ActualizarMarca(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarMarcaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMarca(c.Request.Context(), id, req)
	if err != nil {
		catalogoError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarcaDetalleResponse{Marca: *resp})
}

// DesactivarMarca DELETE /catalogs/marcas/:id (ADMIN)
func (h *CatalogosHandler) DesactivarMarca(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarMarca(c.Request.Context(), id); err != nil {
		catalogoError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}
