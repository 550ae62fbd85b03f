package handler

import (
	"net/http"
	"strings"

	"tallerpro/internal/apierror"
	"tallerpro/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HaciendaHandler struct{ cliente *infra.HaciendaClient }

func NewHaciendaHandler(cliente *infra.HaciendaClient) *HaciendaHandler {
	return &HaciendaHandler{cliente: cliente}
}

// Consultar GET /hacienda?cedula=X — proxy de solo lectura al padrón
// nacional; un fallo aquí nunca bloquea el ingreso manual del cliente.
func (h *HaciendaHandler) Consultar(c *gin.Context) {
	cedula := strings.TrimSpace(c.Query("cedula"))
	if cedula == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Cedula es requerida"))
		return
	}

	resp, err := h.cliente.Consultar(c.Request.Context(), cedula)
	if err != nil {
		log.Warn().Str("cedula", cedula).Err(err).Msg("consulta hacienda fallida")
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo consultar el servicio de Hacienda"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
