package handler

import (
	"errors"
	"net/http"
	"strings"

	"tallerpro/internal/apierror"
	"tallerpro/internal/dto"
	"tallerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

// Buscar GET /clients?cedula=X — localiza por cédula con el historial
// reciente de tickets.
func (h *ClientesHandler) Buscar(c *gin.Context) {
	cedula := strings.TrimSpace(c.Query("cedula"))
	if cedula == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Cedula es requerida"))
		return
	}

	resp, err := h.svc.Buscar(c.Request.Context(), cedula)
	if err != nil {
		if errors.Is(err, service.ErrClienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar cliente"))
		return
	}
	c.JSON(http.StatusOK, dto.ClienteDetalleResponse{Client: *resp})
}

// Guardar POST /clients — upsert por cédula.
func (h *ClientesHandler) Guardar(c *gin.Context) {
	var req dto.GuardarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Guardar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.ClienteDetalleResponse{Client: *resp})
}

// ListarTodos GET /clients/all — listado completo con conteo de tickets.
func (h *ClientesHandler) ListarTodos(c *gin.Context) {
	clientes, err := h.svc.ListarTodos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar clientes"))
		return
	}
	c.JSON(http.StatusOK, dto.ClientesResponse{Clients: clientes})
}

// Obtener GET /clients/:id — detalle con el historial completo.
func (h *ClientesHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener cliente"))
		return
	}
	c.JSON(http.StatusOK, dto.ClienteDetalleResponse{Client: *resp})
}
