package handler

import (
	"net/http"

	"tallerpro/internal/apierror"
	"tallerpro/internal/dto"
	"tallerpro/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Obtener GET /stats — panel completo calculado en fresco.
func (h *StatsHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadísticas"))
		return
	}
	c.JSON(http.StatusOK, dto.StatsEnvelope{Stats: *resp})
}
