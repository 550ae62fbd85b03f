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

type TicketsHandler struct{ svc service.TicketService }

func NewTicketsHandler(svc service.TicketService) *TicketsHandler {
	return &TicketsHandler{svc: svc}
}

// Crear POST /tickets
func (h *TicketsHandler) Crear(c *gin.Context) {
	var req dto.CrearTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrClienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.TicketDetalleResponse{Ticket: *resp})
}

// Listar GET /tickets?search=&status= — página filtrada más el desglose
// de estados de toda la tabla.
func (h *TicketsHandler) Listar(c *gin.Context) {
	filtro := dto.TicketFilter{
		Busqueda: strings.TrimSpace(c.Query("search")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	resp, err := h.svc.Listar(c.Request.Context(), filtro)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar tickets"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener GET /tickets/:id — única vista que incluye la clave de
// desbloqueo descifrada.
func (h *TicketsHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTicketNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener ticket"))
		return
	}
	c.JSON(http.StatusOK, dto.TicketDetalleResponse{Ticket: *resp})
}

// Actualizar PATCH /tickets/:id — actualización parcial de diagnóstico,
// costo y estado.
func (h *TicketsHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case errors.Is(err, service.ErrStatusInvalido):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error al actualizar ticket"))
		}
		return
	}
	c.JSON(http.StatusOK, dto.TicketDetalleResponse{Ticket: *resp})
}
